package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/ticketing/internal/domain"
)

type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCatalogUseCase) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockCatalogUseCase) TicketReport(ctx context.Context) ([]domain.TicketReportRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TicketReportRow), args.Error(1)
}

func newFlightRouter(service *MockCatalogUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewFlightHandler(service)
	handler.Register(router.Group("/flights"))
	handler.RegisterReports(router.Group("/reports"))
	return router
}

func TestListFlights(t *testing.T) {
	service := &MockCatalogUseCase{}
	router := newFlightRouter(service)

	service.On("ListFlights", mock.Anything).Return([]domain.Flight{{ID: 1, Number: "SU100"}}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights/", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var flights []domain.Flight
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &flights))
	assert.Len(t, flights, 1)
	assert.Equal(t, "SU100", flights[0].Number)
}

func TestGetFlight_InvalidID(t *testing.T) {
	service := &MockCatalogUseCase{}
	router := newFlightRouter(service)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFlight_NotFound(t *testing.T) {
	service := &MockCatalogUseCase{}
	router := newFlightRouter(service)

	service.On("GetFlight", mock.Anything, int64(99)).Return(nil, domain.ErrFlightNotFound)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flights/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTicketReport(t *testing.T) {
	service := &MockCatalogUseCase{}
	router := newFlightRouter(service)

	service.On("TicketReport", mock.Anything).Return([]domain.TicketReportRow{
		{TicketID: 7, PNR: "ABC123", BoardingNumber: "BP202506011200000011"},
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/tickets", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ABC123")
}
