package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/ticketing/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, letting the aggregate
// loaders serve the locked issuance path and the read-only quote path alike.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ItineraryRepository interface {
	GetByPNR(ctx context.Context, pnr string) (*domain.Itinerary, error)
}

type PGItineraryRepository struct {
	db *pgxpool.Pool
}

func NewItineraryRepository(db *pgxpool.Pool) ItineraryRepository {
	return &PGItineraryRepository{db: db}
}

// GetByPNR loads the aggregate without locks, for side-effect-free reads such
// as fare quoting.
func (r *PGItineraryRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Itinerary, error) {
	return fetchItinerary(ctx, r.db, pnr, false)
}

func fetchItinerary(ctx context.Context, q querier, pnr string, lock bool) (*domain.Itinerary, error) {
	query := `
		SELECT i.id, i.pnr, i.passenger_id, i.status, i.reserved_at, i.created_at, i.updated_at,
		       p.id, p.first_name, p.last_name, p.email, p.phone, p.meal_preference
		FROM itineraries i
		JOIN passengers p ON p.id = i.passenger_id
		WHERE i.pnr = $1`
	if lock {
		query += ` FOR UPDATE OF i`
	}

	var itin domain.Itinerary
	err := q.QueryRow(ctx, query, pnr).Scan(
		&itin.ID, &itin.PNR, &itin.PassengerID, &itin.Status, &itin.ReservedAt, &itin.CreatedAt, &itin.UpdatedAt,
		&itin.Passenger.ID, &itin.Passenger.FirstName, &itin.Passenger.LastName,
		&itin.Passenger.Email, &itin.Passenger.Phone, &itin.Passenger.MealPreference,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItineraryNotFound
		}
		return nil, err
	}

	if itin.Segments, err = fetchSegments(ctx, q, itin.ID); err != nil {
		return nil, err
	}
	if itin.Services, err = fetchServices(ctx, q, itin.ID); err != nil {
		return nil, err
	}
	if itin.Baggage, err = fetchBaggage(ctx, q, itin.ID); err != nil {
		return nil, err
	}
	return &itin, nil
}

func fetchSegments(ctx context.Context, q querier, itineraryID int64) ([]domain.Segment, error) {
	rows, err := q.Query(ctx, `
		SELECT s.id, s.itinerary_id, s.ordinal, s.flight_id, s.seat_number, s.seat_class, s.seat_status,
		       f.id, f.number, f.from_airport, f.to_airport, f.departure_time, f.arrival_time, f.base_fare, f.seat_capacity, f.created_at, f.updated_at
		FROM segments s
		JOIN flights f ON f.id = s.flight_id
		WHERE s.itinerary_id = $1
		ORDER BY s.ordinal`, itineraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []domain.Segment
	for rows.Next() {
		var s domain.Segment
		if err := rows.Scan(
			&s.ID, &s.ItineraryID, &s.Ordinal, &s.FlightID, &s.SeatNumber, &s.SeatClass, &s.SeatStatus,
			&s.Flight.ID, &s.Flight.Number, &s.Flight.FromAirport, &s.Flight.ToAirport,
			&s.Flight.DepartureTime, &s.Flight.ArrivalTime, &s.Flight.BaseFare, &s.Flight.SeatCapacity,
			&s.Flight.CreatedAt, &s.Flight.UpdatedAt,
		); err != nil {
			return nil, err
		}
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

func fetchServices(ctx context.Context, q querier, itineraryID int64) ([]domain.ItineraryService, error) {
	rows, err := q.Query(ctx, `
		SELECT its.id, its.itinerary_id, its.rate_id, r.service_type
		FROM itinerary_services its
		JOIN service_rates r ON r.id = its.rate_id
		WHERE its.itinerary_id = $1`, itineraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []domain.ItineraryService
	for rows.Next() {
		var svc domain.ItineraryService
		if err := rows.Scan(&svc.ID, &svc.ItineraryID, &svc.RateID, &svc.Type); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func fetchBaggage(ctx context.Context, q querier, itineraryID int64) ([]domain.Baggage, error) {
	rows, err := q.Query(ctx, `SELECT id, itinerary_id, weight_kg, status FROM baggage WHERE itinerary_id = $1`, itineraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var baggage []domain.Baggage
	for rows.Next() {
		var b domain.Baggage
		if err := rows.Scan(&b.ID, &b.ItineraryID, &b.WeightKG, &b.Status); err != nil {
			return nil, err
		}
		baggage = append(baggage, b)
	}
	return baggage, rows.Err()
}

func fetchServiceRates(ctx context.Context, q querier) (domain.RateTable, error) {
	rows, err := q.Query(ctx, `SELECT service_type, fee FROM service_rates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := make(domain.RateTable)
	for rows.Next() {
		var typ domain.ServiceType
		var fee float64
		if err := rows.Scan(&typ, &fee); err != nil {
			return nil, err
		}
		rates[typ] = fee
	}
	return rates, rows.Err()
}

var _ ItineraryRepository = (*PGItineraryRepository)(nil)
