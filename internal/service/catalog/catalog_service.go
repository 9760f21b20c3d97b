package catalog

import (
	"context"

	"github.com/zvrva/ticketing/internal/domain"
	"github.com/zvrva/ticketing/internal/repository"
)

type CatalogUseCase interface {
	ListFlights(ctx context.Context) ([]domain.Flight, error)
	GetFlight(ctx context.Context, id int64) (*domain.Flight, error)
	TicketReport(ctx context.Context) ([]domain.TicketReportRow, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	GetTicketReport(ctx context.Context) ([]domain.TicketReportRow, error)
	SetTicketReport(ctx context.Context, report []domain.TicketReportRow) error
}

type CatalogService struct {
	flights repository.FlightRepository
	tickets repository.TicketRepository
	cache   Cache
}

func NewCatalogService(flights repository.FlightRepository, tickets repository.TicketRepository, cache Cache) *CatalogService {
	return &CatalogService{flights: flights, tickets: tickets, cache: cache}
}

func (s *CatalogService) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *CatalogService) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

func (s *CatalogService) TicketReport(ctx context.Context) ([]domain.TicketReportRow, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTicketReport(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	report, err := s.tickets.Report(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTicketReport(ctx, report)
	}
	return report, nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
