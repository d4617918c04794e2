package model

import "time"

type Contractor struct {
	ID             int64
	Name           string
	Phone          *string
	Email          *string
	RegistrationNo *string
	Address        *string
	CreatedAt      time.Time
}
