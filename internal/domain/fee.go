package domain

import "github.com/google/uuid"

type EnterpriseFee struct {
	ID           uuid.UUID
	EnterpriseID uuid.UUID
	Name         string
	Calculator   Calculator
}

// ExchangeFee is an enterprise fee charged on the variants of one exchange.
type ExchangeFee struct {
	Exchange Exchange
	Fee      EnterpriseFee
}
