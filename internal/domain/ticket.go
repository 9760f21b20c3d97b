package domain

import "time"

// Ticket is the issuance artifact. Exactly one exists per itinerary once the
// itinerary reaches TICKET_ISSUED; it is immutable thereafter.
type Ticket struct {
	ID             int64
	ItineraryID    int64
	BoardingNumber string
	EmployeeID     int64
	Fare           float64
	IssuedAt       time.Time
}

// TicketReportRow is the read-only projection Ticket x Itinerary x Passenger x
// Flight used for downstream display. Derived outside the transactional core.
type TicketReportRow struct {
	TicketID       int64     `json:"ticket_id"`
	BoardingNumber string    `json:"boarding_number"`
	Fare           float64   `json:"fare"`
	IssuedAt       time.Time `json:"issued_at"`
	PNR            string    `json:"pnr"`
	PassengerName  string    `json:"passenger_name"`
	FlightNumber   string    `json:"flight_number"`
	FromAirport    string    `json:"from_airport"`
	ToAirport      string    `json:"to_airport"`
	DepartureTime  time.Time `json:"departure_time"`
}
