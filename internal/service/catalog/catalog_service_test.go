package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/ticketing/internal/domain"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Report(ctx context.Context) ([]domain.TicketReportRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TicketReportRow), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) GetTicketReport(ctx context.Context) ([]domain.TicketReportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketReportRow), args.Error(1)
}

func (m *MockCache) SetTicketReport(ctx context.Context, report []domain.TicketReportRow) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func TestListFlights_CacheHit(t *testing.T) {
	flights := &MockFlightRepository{}
	tickets := &MockTicketRepository{}
	cache := &MockCache{}
	svc := NewCatalogService(flights, tickets, cache)

	cached := []domain.Flight{{ID: 1, Number: "SU100"}}
	cache.On("GetFlights", mock.Anything).Return(cached, nil)

	got, err := svc.ListFlights(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	flights.AssertNotCalled(t, "List", mock.Anything)
}

func TestListFlights_CacheMissFallsBackToRepo(t *testing.T) {
	flights := &MockFlightRepository{}
	tickets := &MockTicketRepository{}
	cache := &MockCache{}
	svc := NewCatalogService(flights, tickets, cache)

	fromRepo := []domain.Flight{{ID: 2, Number: "SU200"}}
	cache.On("GetFlights", mock.Anything).Return(nil, nil)
	flights.On("List", mock.Anything).Return(fromRepo, nil)
	cache.On("SetFlights", mock.Anything, fromRepo).Return(nil)

	got, err := svc.ListFlights(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, fromRepo, got)
	cache.AssertExpectations(t)
}

func TestListFlights_NoCache(t *testing.T) {
	flights := &MockFlightRepository{}
	svc := NewCatalogService(flights, &MockTicketRepository{}, nil)

	fromRepo := []domain.Flight{{ID: 3}}
	flights.On("List", mock.Anything).Return(fromRepo, nil)

	got, err := svc.ListFlights(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, fromRepo, got)
}

func TestGetFlight_NotFound(t *testing.T) {
	flights := &MockFlightRepository{}
	svc := NewCatalogService(flights, &MockTicketRepository{}, nil)

	flights.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrFlightNotFound)

	_, err := svc.GetFlight(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestTicketReport_CacheMissFallsBackToRepo(t *testing.T) {
	tickets := &MockTicketRepository{}
	cache := &MockCache{}
	svc := NewCatalogService(&MockFlightRepository{}, tickets, cache)

	report := []domain.TicketReportRow{{
		TicketID:       7,
		BoardingNumber: "BP202506011200000011",
		PNR:            "ABC123",
		IssuedAt:       time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
	}}
	cache.On("GetTicketReport", mock.Anything).Return(nil, nil)
	tickets.On("Report", mock.Anything).Return(report, nil)
	cache.On("SetTicketReport", mock.Anything, report).Return(nil)

	got, err := svc.TicketReport(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, report, got)
	cache.AssertExpectations(t)
}
