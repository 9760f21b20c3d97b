package fare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zvrva/ticketing/internal/domain"
)

func testRates() domain.RateTable {
	return domain.RateTable{
		domain.ServiceExtraBaggage:  100.00,
		domain.ServiceUpgradedMeal:  20.00,
		domain.ServicePreferredSeat: 30.00,
	}
}

func TestCalculate_MultiLegWithAncillaries(t *testing.T) {
	itin := &domain.Itinerary{
		Segments: []domain.Segment{
			{FlightID: 1, Flight: domain.Flight{ID: 1, BaseFare: 150.00}},
			{FlightID: 2, Flight: domain.Flight{ID: 2, BaseFare: 220.00}},
		},
		Baggage: []domain.Baggage{
			{WeightKG: 23.2},
			{WeightKG: 12.5},
		},
		Services: []domain.ItineraryService{
			{Type: domain.ServiceUpgradedMeal},
			{Type: domain.ServicePreferredSeat},
		},
	}

	b := Calculate(itin, testRates())

	assert.Equal(t, 370.00, b.Base)
	assert.InDelta(t, 1570.00, b.Baggage, 0.001)
	assert.Equal(t, 20.00, b.Meal)
	assert.Equal(t, 30.00, b.Seat)
	assert.Equal(t, 1990.00, b.Total)
}

func TestCalculate_BaggageWithinAllowance(t *testing.T) {
	itin := &domain.Itinerary{
		Segments: []domain.Segment{
			{FlightID: 1, Flight: domain.Flight{ID: 1, BaseFare: 99.90}},
		},
		Baggage: []domain.Baggage{{WeightKG: 19.9}},
	}

	b := Calculate(itin, testRates())

	assert.Equal(t, 0.0, b.Baggage)
	assert.Equal(t, 99.90, b.Total)
}

func TestCalculate_NoServicesNoBaggage(t *testing.T) {
	itin := &domain.Itinerary{
		Segments: []domain.Segment{
			{FlightID: 7, Flight: domain.Flight{ID: 7, BaseFare: 310.50}},
		},
	}

	b := Calculate(itin, testRates())

	assert.Equal(t, 310.50, b.Total)
	assert.Equal(t, 0.0, b.Meal)
	assert.Equal(t, 0.0, b.Seat)
}

func TestCalculate_RoundsToCents(t *testing.T) {
	itin := &domain.Itinerary{
		Segments: []domain.Segment{
			{FlightID: 1, Flight: domain.Flight{ID: 1, BaseFare: 0.1}},
			{FlightID: 2, Flight: domain.Flight{ID: 2, BaseFare: 0.2}},
		},
	}

	b := Calculate(itin, testRates())

	assert.Equal(t, 0.30, b.Total)
}

func TestCalculate_ReferentiallyTransparent(t *testing.T) {
	itin := &domain.Itinerary{
		Segments: []domain.Segment{
			{FlightID: 1, Flight: domain.Flight{ID: 1, BaseFare: 150.00}},
			{FlightID: 2, Flight: domain.Flight{ID: 2, BaseFare: 220.00}},
		},
		Baggage:  []domain.Baggage{{WeightKG: 35.7}},
		Services: []domain.ItineraryService{{Type: domain.ServiceUpgradedMeal}},
	}
	rates := testRates()

	first := Calculate(itin, rates)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Calculate(itin, rates))
	}
}
