// Package fare computes the total price of an itinerary. The calculation is
// pure: it reads only its arguments and is safe to call from reporting flows
// outside the issuance transaction.
package fare

import (
	"math"

	"github.com/zvrva/ticketing/internal/domain"
)

// BaggageAllowanceKG is the free checked-baggage weight per itinerary; only
// the excess over it is billed at the EXTRA_BAGGAGE rate.
const BaggageAllowanceKG = 20.0

type Breakdown struct {
	Base    float64 `json:"base"`
	Baggage float64 `json:"baggage"`
	Meal    float64 `json:"meal"`
	Seat    float64 `json:"seat"`
	Total   float64 `json:"total"`
}

// Calculate aggregates leg base fares and ancillary fees for one itinerary.
// Each segment's flight is billed once per leg.
func Calculate(itin *domain.Itinerary, rates domain.RateTable) Breakdown {
	var b Breakdown
	for _, s := range itin.Segments {
		b.Base += s.Flight.BaseFare
	}

	var weight float64
	for _, bag := range itin.Baggage {
		weight += bag.WeightKG
	}
	if excess := weight - BaggageAllowanceKG; excess > 0 {
		b.Baggage = excess * rates.Fee(domain.ServiceExtraBaggage)
	}

	for _, svc := range itin.Services {
		switch svc.Type {
		case domain.ServiceUpgradedMeal:
			b.Meal += rates.Fee(domain.ServiceUpgradedMeal)
		case domain.ServicePreferredSeat:
			b.Seat += rates.Fee(domain.ServicePreferredSeat)
		}
	}

	b.Total = round2(b.Base + b.Baggage + b.Meal + b.Seat)
	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
