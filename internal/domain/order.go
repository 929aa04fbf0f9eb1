package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Order is a real order materialized from a proxy order.
type Order struct {
	ID               uuid.UUID
	Number           string
	ShopID           uuid.UUID
	CustomerID       uuid.UUID
	OrderCycleID     uuid.UUID
	ShippingMethodID uuid.UUID
	PaymentMethodID  uuid.UUID
	State            OrderState
	Items            []OrderItem
	BillAddress      Address
	ShipAddress      Address
	LockVersion      int

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderItem struct {
	ID        uuid.UUID
	VariantID uuid.UUID
	Quantity  int
	Price     Money

	CreatedAt time.Time
}

func (o Order) ItemTotal(unit currency.Unit) Money {
	total := Money{Amount: decimal.Zero, Currency: unit}
	for _, item := range o.Items {
		total.Amount = total.Amount.Add(item.Price.Times(item.Quantity).Amount)
	}
	return total
}

func (o Order) Item(variantID uuid.UUID) (OrderItem, bool) {
	for _, item := range o.Items {
		if item.VariantID == variantID {
			return item, true
		}
	}
	return OrderItem{}, false
}

func (o Order) Completed() bool {
	return o.State == OrderStateComplete
}
