package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlightIDs_DistinctAndSorted(t *testing.T) {
	itin := &Itinerary{
		Segments: []Segment{
			{FlightID: 200},
			{FlightID: 100},
			{FlightID: 200},
			{FlightID: 150},
		},
	}

	assert.Equal(t, []int64{100, 150, 200}, itin.FlightIDs())
}

func TestFlightIDs_Empty(t *testing.T) {
	itin := &Itinerary{}
	assert.Empty(t, itin.FlightIDs())
}
