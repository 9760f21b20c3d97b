package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/ticketing/internal/domain"
)

// IssuanceStore is the transaction-scoped view of the store used by the
// issuance orchestrator. All methods run on one open transaction; locks taken
// by FetchForIssuance and LockFlights are held until the transaction ends.
type IssuanceStore interface {
	FetchForIssuance(ctx context.Context, pnr string) (*domain.Itinerary, error)
	LockFlights(ctx context.Context, flightIDs []int64) ([]domain.Flight, error)
	CountIssued(ctx context.Context, flightIDs []int64) (map[int64]int, error)
	ServiceRates(ctx context.Context) (domain.RateTable, error)
	MarkTicketIssued(ctx context.Context, itineraryID int64) error
	InsertTicket(ctx context.Context, ticket *domain.Ticket) error
	ReserveSegments(ctx context.Context, itineraryID int64) error
}

type IssuanceRepository interface {
	InTx(ctx context.Context, fn func(IssuanceStore) error) error
}

type PGIssuanceRepository struct {
	db *pgxpool.Pool
}

func NewIssuanceRepository(db *pgxpool.Pool) IssuanceRepository {
	return &PGIssuanceRepository{db: db}
}

// InTx runs fn inside a single transaction and commits only if fn returns nil.
// Any error rolls the whole unit back; driver conflicts are mapped to the
// domain sentinels before being returned.
func (r *PGIssuanceRepository) InTx(ctx context.Context, fn func(IssuanceStore) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapPgError(err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgIssuanceStore{tx: tx}); err != nil {
		return mapPgError(err)
	}
	return mapPgError(tx.Commit(ctx))
}

type pgIssuanceStore struct {
	tx pgx.Tx
}

// FetchForIssuance loads the aggregate under an exclusive row lock on the
// itinerary, serializing concurrent issuance attempts on the same PNR.
func (s *pgIssuanceStore) FetchForIssuance(ctx context.Context, pnr string) (*domain.Itinerary, error) {
	return fetchItinerary(ctx, s.tx, pnr, true)
}

// LockFlights takes row locks on the given flights in ascending id order. The
// order is a deadlock guard for multi-leg itineraries sharing flights.
func (s *pgIssuanceStore) LockFlights(ctx context.Context, flightIDs []int64) ([]domain.Flight, error) {
	rows, err := s.tx.Query(ctx, `
		SELECT id, number, from_airport, to_airport, departure_time, arrival_time, base_fare, seat_capacity, created_at, updated_at
		FROM flights
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, flightIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0, len(flightIDs))
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.Number, &f.FromAirport, &f.ToAirport, &f.DepartureTime, &f.ArrivalTime, &f.BaseFare, &f.SeatCapacity, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(flights) != len(flightIDs) {
		return nil, domain.ErrFlightNotFound
	}
	return flights, nil
}

// CountIssued derives the issued-seat count per flight from committed tickets
// of TICKET_ISSUED itineraries. Callers must hold the flight locks first so
// the count stays valid through the ticket insert.
func (s *pgIssuanceStore) CountIssued(ctx context.Context, flightIDs []int64) (map[int64]int, error) {
	rows, err := s.tx.Query(ctx, `
		SELECT seg.flight_id, COUNT(DISTINCT t.id)
		FROM tickets t
		JOIN itineraries i ON i.id = t.itinerary_id AND i.status = $1
		JOIN segments seg ON seg.itinerary_id = i.id
		WHERE seg.flight_id = ANY($2)
		GROUP BY seg.flight_id`, domain.ItineraryStatusTicketIssued, flightIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int, len(flightIDs))
	for rows.Next() {
		var flightID int64
		var n int
		if err := rows.Scan(&flightID, &n); err != nil {
			return nil, err
		}
		counts[flightID] = n
	}
	return counts, rows.Err()
}

func (s *pgIssuanceStore) ServiceRates(ctx context.Context) (domain.RateTable, error) {
	return fetchServiceRates(ctx, s.tx)
}

func (s *pgIssuanceStore) MarkTicketIssued(ctx context.Context, itineraryID int64) error {
	cmd, err := s.tx.Exec(ctx, `UPDATE itineraries SET status=$1, updated_at=now() WHERE id=$2`, domain.ItineraryStatusTicketIssued, itineraryID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrItineraryNotFound
	}
	return nil
}

func (s *pgIssuanceStore) InsertTicket(ctx context.Context, ticket *domain.Ticket) error {
	return s.tx.QueryRow(ctx, `
		INSERT INTO tickets (itinerary_id, boarding_number, employee_id, fare)
		VALUES ($1, $2, $3, $4)
		RETURNING id, issued_at`,
		ticket.ItineraryID, ticket.BoardingNumber, ticket.EmployeeID, ticket.Fare).
		Scan(&ticket.ID, &ticket.IssuedAt)
}

// ReserveSegments flips every AVAILABLE segment of the itinerary to RESERVED.
// Already-RESERVED segments are left untouched.
func (s *pgIssuanceStore) ReserveSegments(ctx context.Context, itineraryID int64) error {
	_, err := s.tx.Exec(ctx, `UPDATE segments SET seat_status=$1 WHERE itinerary_id=$2 AND seat_status=$3`,
		domain.SeatStatusReserved, itineraryID, domain.SeatStatusAvailable)
	return err
}

// SQLSTATE classes this engine acts on: 23505 on the boarding-number index is
// a credential collision; lock-wait and serialization failures surface to the
// caller as a retryable conflict.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		if pgErr.ConstraintName == "tickets_boarding_number_key" {
			return domain.ErrCredentialCollision
		}
		return err
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return domain.ErrBusy
	}
	return err
}

var _ IssuanceRepository = (*PGIssuanceRepository)(nil)
var _ IssuanceStore = (*pgIssuanceStore)(nil)
