package domain

import (
	"errors"
	"fmt"
)

var (
	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
)

var (
	// ErrInvalidState: the itinerary is not in CONFIRMED status. Also the
	// deterministic answer to a repeated issuance attempt.
	ErrInvalidState = errors.New("itinerary is not in an issuable state")
	// ErrCredentialCollision: a generated boarding number hit the unique
	// index. Internal, retried with a fresh credential.
	ErrCredentialCollision = errors.New("boarding number collision")
	// ErrBusy: transient lock or serialization conflict; safe to retry.
	ErrBusy = errors.New("concurrent issuance conflict, retry")
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// CapacityExceededError reports the flights of an itinerary that have no
// remaining seats.
type CapacityExceededError struct {
	FlightIDs []int64
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("seat capacity exceeded for flights %v", e.FlightIDs)
}
