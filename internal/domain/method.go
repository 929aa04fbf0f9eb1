package domain

import "github.com/google/uuid"

type ShippingMethod struct {
	ID            uuid.UUID
	DistributorID uuid.UUID
	Name          string
	Calculator    Calculator
}

type PaymentMethod struct {
	ID            uuid.UUID
	DistributorID uuid.UUID
	Name          string
	Calculator    Calculator
}
