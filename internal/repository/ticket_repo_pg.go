package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/ticketing/internal/domain"
)

type TicketRepository interface {
	Report(ctx context.Context) ([]domain.TicketReportRow, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

// Report joins tickets with their itinerary, passenger and flight legs. One
// row per (ticket, leg); derived outside the issuance transaction.
func (r *PGTicketRepository) Report(ctx context.Context) ([]domain.TicketReportRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.boarding_number, t.fare, t.issued_at,
		       i.pnr, p.first_name || ' ' || p.last_name,
		       f.number, f.from_airport, f.to_airport, f.departure_time
		FROM tickets t
		JOIN itineraries i ON i.id = t.itinerary_id
		JOIN passengers p ON p.id = i.passenger_id
		JOIN segments s ON s.itinerary_id = i.id
		JOIN flights f ON f.id = s.flight_id
		ORDER BY t.issued_at DESC, t.id, s.ordinal`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]domain.TicketReportRow, 0)
	for rows.Next() {
		var row domain.TicketReportRow
		if err := rows.Scan(&row.TicketID, &row.BoardingNumber, &row.Fare, &row.IssuedAt,
			&row.PNR, &row.PassengerName,
			&row.FlightNumber, &row.FromAirport, &row.ToAirport, &row.DepartureTime); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

var _ TicketRepository = (*PGTicketRepository)(nil)
