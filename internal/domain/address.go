package domain

import "github.com/google/uuid"

type Address struct {
	ID        uuid.UUID
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Address1  string `validate:"required"`
	Address2  string
	City      string `validate:"required"`
	Zipcode   string `validate:"required"`
	Phone     string `validate:"required"`
	Country   string `validate:"required"`
}

// SameAs compares the postal fields only.
func (a Address) SameAs(other Address) bool {
	a.ID = uuid.Nil
	other.ID = uuid.Nil
	return a == other
}
