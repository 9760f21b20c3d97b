package domain

import "time"

type Passenger struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	MealPreference string
	CreatedAt      time.Time
}

func (p Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Employee is the trusted caller identity recorded on issued tickets. The
// password hash is used only by the login flow, never by the issuance core.
type Employee struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}
