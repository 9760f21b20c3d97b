package domain

import "time"

type Flight struct {
	ID            int64
	Number        string
	FromAirport   string
	ToAirport     string
	DepartureTime time.Time
	ArrivalTime   time.Time
	BaseFare      float64
	SeatCapacity  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
