package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// OrderCycleWindow is the interval during which an order cycle accepts orders.
type OrderCycleWindow struct {
	OpensAt  time.Time
	ClosesAt time.Time
}

// ClosesWithin reports whether the window closes in [begin, end).
func (w OrderCycleWindow) ClosesWithin(begin, end time.Time) bool {
	return TimeRange{From: begin, To: end}.Contains(w.ClosesAt)
}

func (w OrderCycleWindow) IsClosed(now time.Time) bool {
	return w.ClosesAt.Before(now)
}

func (w OrderCycleWindow) IsUpcoming(now time.Time) bool {
	return w.OpensAt.After(now)
}

func (w OrderCycleWindow) IsOpen(now time.Time) bool {
	return !w.IsUpcoming(now) && !w.IsClosed(now)
}

type OrderCycleStatus string

const (
	OrderCycleOpen     OrderCycleStatus = "open"
	OrderCycleUpcoming OrderCycleStatus = "upcoming"
	OrderCycleClosed   OrderCycleStatus = "closed"
)

func (w OrderCycleWindow) Status(now time.Time) OrderCycleStatus {
	switch {
	case w.IsClosed(now):
		return OrderCycleClosed
	case w.IsUpcoming(now):
		return OrderCycleUpcoming
	default:
		return OrderCycleOpen
	}
}

// Exchange moves variants from sender to receiver within an order cycle.
// Incoming exchanges go producer -> coordinator, outgoing coordinator -> shop.
type Exchange struct {
	ID           uuid.UUID
	OrderCycleID uuid.UUID
	SenderID     uuid.UUID
	ReceiverID   uuid.UUID
	Incoming     bool
	VariantIDs   []uuid.UUID
}

func (e Exchange) HasVariant(variantID uuid.UUID) bool {
	return slices.Contains(e.VariantIDs, variantID)
}

type OrderCycle struct {
	ID            uuid.UUID
	Name          string
	CoordinatorID uuid.UUID
	Window        OrderCycleWindow
	Exchanges     []Exchange
}

// DistributesVariant reports whether the variant reaches shopID through an
// outgoing exchange of this order cycle.
func (oc OrderCycle) DistributesVariant(shopID, variantID uuid.UUID) bool {
	for _, e := range oc.Exchanges {
		if !e.Incoming && e.ReceiverID == shopID && e.HasVariant(variantID) {
			return true
		}
	}
	return false
}

// CurrentOrNext returns the open order cycle closing soonest, or failing that
// the upcoming one opening soonest.
func CurrentOrNext(cycles []OrderCycle, now time.Time) (OrderCycle, bool) {
	var (
		current, next       OrderCycle
		hasCurrent, hasNext bool
	)

	for _, oc := range cycles {
		switch oc.Window.Status(now) {
		case OrderCycleOpen:
			if !hasCurrent || oc.Window.ClosesAt.Before(current.Window.ClosesAt) {
				current, hasCurrent = oc, true
			}
		case OrderCycleUpcoming:
			if !hasNext || oc.Window.OpensAt.Before(next.Window.OpensAt) {
				next, hasNext = oc, true
			}
		}
	}

	if hasCurrent {
		return current, true
	}
	return next, hasNext
}

type Schedule struct {
	ID            uuid.UUID
	Name          string
	OrderCycleIDs []uuid.UUID
}
