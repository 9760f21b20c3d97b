package domain

import (
	"slices"
	"time"
)

type ItineraryStatus string

const (
	ItineraryStatusPending      ItineraryStatus = "PENDING"
	ItineraryStatusConfirmed    ItineraryStatus = "CONFIRMED"
	ItineraryStatusCancelled    ItineraryStatus = "CANCELLED"
	ItineraryStatusTicketIssued ItineraryStatus = "TICKET_ISSUED"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusReserved  SeatStatus = "RESERVED"
)

type ServiceType string

const (
	ServiceExtraBaggage  ServiceType = "EXTRA_BAGGAGE"
	ServiceUpgradedMeal  ServiceType = "UPGRADED_MEAL"
	ServicePreferredSeat ServiceType = "PREFERRED_SEAT"
)

// Itinerary is the aggregate root of a passenger's multi-leg trip. Segments,
// services and baggage are loaded together with the root by the repository.
type Itinerary struct {
	ID          int64
	PNR         string
	PassengerID int64
	Passenger   Passenger
	Status      ItineraryStatus
	ReservedAt  time.Time
	Segments    []Segment
	Services    []ItineraryService
	Baggage     []Baggage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FlightIDs returns the distinct flights of the itinerary's segments in
// ascending order. Repositories rely on this order when taking row locks.
func (i *Itinerary) FlightIDs() []int64 {
	seen := make(map[int64]bool, len(i.Segments))
	ids := make([]int64, 0, len(i.Segments))
	for _, s := range i.Segments {
		if seen[s.FlightID] {
			continue
		}
		seen[s.FlightID] = true
		ids = append(ids, s.FlightID)
	}
	slices.Sort(ids)
	return ids
}

// Segment is one leg of an itinerary. (FlightID, SeatNumber) is unique across
// all itineraries.
type Segment struct {
	ID          int64
	ItineraryID int64
	Ordinal     int
	FlightID    int64
	Flight      Flight
	SeatNumber  string
	SeatClass   string
	SeatStatus  SeatStatus
}

// ItineraryService is the itinerary's selection of a catalog rate; at most one
// per service type per itinerary.
type ItineraryService struct {
	ID          int64
	ItineraryID int64
	RateID      int64
	Type        ServiceType
}

type BaggageStatus string

const (
	BaggageStatusCheckedIn BaggageStatus = "CHECKED_IN"
	BaggageStatusLoaded    BaggageStatus = "LOADED"
)

type Baggage struct {
	ID          int64
	ItineraryID int64
	WeightKG    float64
	Status      BaggageStatus
}

// RateTable maps ancillary service types to their catalog fee.
type RateTable map[ServiceType]float64

func (t RateTable) Fee(typ ServiceType) float64 {
	return t[typ]
}
