// Package issuance turns a confirmed itinerary into exactly one issued ticket.
//
// The whole effect set of one issuance - status transition, ticket row, seat
// reservation - commits or rolls back as a single transaction. Serialization
// happens in the store: a row lock on the itinerary (same-PNR attempts) and
// row locks on the flights (capacity admission).
package issuance

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/zvrva/ticketing/internal/credential"
	"github.com/zvrva/ticketing/internal/domain"
	"github.com/zvrva/ticketing/internal/fare"
	"github.com/zvrva/ticketing/internal/kafka"
	"github.com/zvrva/ticketing/internal/repository"
)

type IssuanceUseCase interface {
	IssueTicket(ctx context.Context, pnr string, employeeID int64) (*domain.Ticket, error)
	QuoteFare(ctx context.Context, pnr string) (fare.Breakdown, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ReportInvalidator interface {
	InvalidateTicketReport(ctx context.Context) error
}

// credentialAttempts bounds regeneration after a boarding-number collision. A
// collision aborts the transaction, so each attempt re-runs the atomic unit
// with a fresh credential.
const credentialAttempts = 3

type Service struct {
	repo        repository.IssuanceRepository
	itineraries repository.ItineraryRepository
	rates       repository.RateRepository
	credentials *credential.Generator
	producer    Producer
	reports     ReportInvalidator
	ticketTopic string
}

type ServiceOption func(*Service)

func WithProducer(producer Producer, topic string) ServiceOption {
	return func(s *Service) {
		s.producer = producer
		s.ticketTopic = topic
	}
}

func WithReportInvalidator(reports ReportInvalidator) ServiceOption {
	return func(s *Service) {
		s.reports = reports
	}
}

func NewService(
	repo repository.IssuanceRepository,
	itineraries repository.ItineraryRepository,
	rates repository.RateRepository,
	credentials *credential.Generator,
	opts ...ServiceOption,
) *Service {
	service := &Service{
		repo:        repo,
		itineraries: itineraries,
		rates:       rates,
		credentials: credentials,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// IssueTicket is the sole entrypoint of the issuance core. On any error the
// persisted state is untouched; a repeated call for an already issued
// itinerary gets ErrInvalidState, never a second ticket.
func (s *Service) IssueTicket(ctx context.Context, pnr string, employeeID int64) (*domain.Ticket, error) {
	var ticket *domain.Ticket
	var email string
	var err error
	for attempt := 0; attempt < credentialAttempts; attempt++ {
		ticket, email, err = s.issueOnce(ctx, pnr, employeeID, attempt)
		if errors.Is(err, domain.ErrCredentialCollision) {
			log.Printf("boarding number collision for %s, regenerating (attempt %d)", pnr, attempt+1)
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	s.afterIssue(ctx, pnr, email, ticket)
	return ticket, nil
}

func (s *Service) issueOnce(ctx context.Context, pnr string, employeeID int64, attempt int) (*domain.Ticket, string, error) {
	var ticket *domain.Ticket
	var passengerEmail string

	err := s.repo.InTx(ctx, func(store repository.IssuanceStore) error {
		itin, err := store.FetchForIssuance(ctx, pnr)
		if err != nil {
			return err
		}
		if itin.Status != domain.ItineraryStatusConfirmed {
			return fmt.Errorf("%w: itinerary %s is %s", domain.ErrInvalidState, pnr, itin.Status)
		}
		passengerEmail = itin.Passenger.Email

		flightIDs := itin.FlightIDs()
		flights, err := store.LockFlights(ctx, flightIDs)
		if err != nil {
			return err
		}
		counts, err := store.CountIssued(ctx, flightIDs)
		if err != nil {
			return err
		}
		var full []int64
		for _, f := range flights {
			if counts[f.ID]+1 > f.SeatCapacity {
				full = append(full, f.ID)
			}
		}
		if len(full) > 0 {
			return &domain.CapacityExceededError{FlightIDs: full}
		}

		rates, err := store.ServiceRates(ctx)
		if err != nil {
			return err
		}
		breakdown := fare.Calculate(itin, rates)

		if err := store.MarkTicketIssued(ctx, itin.ID); err != nil {
			return err
		}

		ticket = &domain.Ticket{
			ItineraryID:    itin.ID,
			BoardingNumber: s.credentials.Generate(itin.ID, attempt),
			EmployeeID:     employeeID,
			Fare:           breakdown.Total,
		}
		if err := store.InsertTicket(ctx, ticket); err != nil {
			return err
		}

		return store.ReserveSegments(ctx, itin.ID)
	})
	if err != nil {
		return nil, "", err
	}
	return ticket, passengerEmail, nil
}

// QuoteFare computes the fare of an itinerary without side effects, outside
// any transaction.
func (s *Service) QuoteFare(ctx context.Context, pnr string) (fare.Breakdown, error) {
	itin, err := s.itineraries.GetByPNR(ctx, pnr)
	if err != nil {
		return fare.Breakdown{}, err
	}
	rates, err := s.rates.Rates(ctx)
	if err != nil {
		return fare.Breakdown{}, err
	}
	return fare.Calculate(itin, rates), nil
}

// afterIssue runs the best-effort post-commit steps: event publish and report
// cache invalidation. Failures are logged, never surfaced - the ticket is
// already committed.
func (s *Service) afterIssue(ctx context.Context, pnr, passengerEmail string, ticket *domain.Ticket) {
	if s.reports != nil {
		if err := s.reports.InvalidateTicketReport(ctx); err != nil {
			log.Printf("invalidate ticket report cache: %v", err)
		}
	}
	if s.producer == nil || s.ticketTopic == "" {
		return
	}
	event := kafka.TicketEvent{
		EventID:        uuid.NewString(),
		Type:           kafka.EventTicketIssued,
		PNR:            pnr,
		TicketID:       ticket.ID,
		BoardingNumber: ticket.BoardingNumber,
		Fare:           ticket.Fare,
		PassengerEmail: passengerEmail,
		IssuedAt:       ticket.IssuedAt,
	}
	if err := s.producer.Publish(ctx, s.ticketTopic, pnr, event); err != nil {
		log.Printf("publish %s event for %s: %v", kafka.EventTicketIssued, pnr, err)
	}
}

var _ IssuanceUseCase = (*Service)(nil)
