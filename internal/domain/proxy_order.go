package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProxyOrder links a subscription to an order cycle before a real order exists.
// PlacedAt is terminal: once set the proxy order is never removed.
type ProxyOrder struct {
	ID             uuid.UUID
	SubscriptionID uuid.UUID
	OrderCycleID   uuid.UUID
	OrderID        *uuid.UUID

	PlacedAt    *time.Time
	ConfirmedAt *time.Time
	CanceledAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p ProxyOrder) Placed() bool {
	return p.PlacedAt != nil
}

func (p ProxyOrder) Canceled() bool {
	return p.CanceledAt != nil
}
