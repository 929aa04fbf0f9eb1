package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SubscriptionState string

const (
	SubscriptionPending  SubscriptionState = "pending"
	SubscriptionActive   SubscriptionState = "active"
	SubscriptionPaused   SubscriptionState = "paused"
	SubscriptionCanceled SubscriptionState = "canceled"
	SubscriptionEnded    SubscriptionState = "ended"
)

// Subscription is a customer's standing order with one shop. Canceled and
// paused are soft states carried by timestamps.
type Subscription struct {
	ID               uuid.UUID
	ShopID           uuid.UUID `validate:"required"`
	CustomerID       uuid.UUID `validate:"required"`
	ScheduleID       uuid.UUID `validate:"required"`
	PaymentMethodID  uuid.UUID `validate:"required"`
	ShippingMethodID uuid.UUID `validate:"required"`
	BillAddress      Address
	ShipAddress      Address

	BeginsAt   time.Time `validate:"required"`
	EndsAt     *time.Time
	PausedAt   *time.Time
	CanceledAt *time.Time

	ShippingFeeEstimate decimal.Decimal
	PaymentFeeEstimate  decimal.Decimal

	LineItems []SubscriptionLineItem `validate:"dive"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Subscription) Persisted() bool {
	return s.ID != uuid.Nil
}

func (s Subscription) Canceled() bool {
	return s.CanceledAt != nil
}

func (s Subscription) Paused() bool {
	return s.PausedAt != nil
}

func (s Subscription) State(now time.Time) SubscriptionState {
	switch {
	case s.Canceled():
		return SubscriptionCanceled
	case s.Paused():
		return SubscriptionPaused
	case s.BeginsAt.After(now):
		return SubscriptionPending
	case s.EndsAt != nil && s.EndsAt.Before(now):
		return SubscriptionEnded
	default:
		return SubscriptionActive
	}
}

func (s Subscription) Validate() error {
	if s.EndsAt != nil && !s.BeginsAt.Before(*s.EndsAt) {
		return errors.New("begins_at must precede ends_at")
	}

	return nil
}

// ItemEstimates returns the estimated price and quantity of each line item.
func (s Subscription) ItemEstimates() []LineAmount {
	lines := make([]LineAmount, 0, len(s.LineItems))
	for _, li := range s.LineItems {
		lines = append(lines, LineAmount{Price: li.PriceEstimate.Decimal, Quantity: li.Quantity})
	}
	return lines
}
