package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/ticketing/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type RateRepository interface {
	Rates(ctx context.Context) (domain.RateTable, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT id, number, from_airport, to_airport, departure_time, arrival_time, base_fare, seat_capacity, created_at, updated_at FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.Number, &f.FromAirport, &f.ToAirport, &f.DepartureTime, &f.ArrivalTime, &f.BaseFare, &f.SeatCapacity, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT id, number, from_airport, to_airport, departure_time, arrival_time, base_fare, seat_capacity, created_at, updated_at FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Number, &f.FromAirport, &f.ToAirport, &f.DepartureTime, &f.ArrivalTime, &f.BaseFare, &f.SeatCapacity, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

type PGRateRepository struct {
	db *pgxpool.Pool
}

func NewRateRepository(db *pgxpool.Pool) RateRepository {
	return &PGRateRepository{db: db}
}

func (r *PGRateRepository) Rates(ctx context.Context) (domain.RateTable, error) {
	return fetchServiceRates(ctx, r.db)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
var _ RateRepository = (*PGRateRepository)(nil)
