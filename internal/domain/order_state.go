package domain

import (
	"errors"
	"slices"
)

var ErrInvalidStateTransition = errors.New("invalid order state transition")

type OrderState string

// remember to add new states to the validOrderStates map and orderStateFlow
const (
	OrderStateCart         OrderState = "cart"
	OrderStateAddress      OrderState = "address"
	OrderStateDelivery     OrderState = "delivery"
	OrderStatePayment      OrderState = "payment"
	OrderStateConfirmation OrderState = "confirmation"
	OrderStateComplete     OrderState = "complete"
	OrderStateCanceled     OrderState = "canceled"
)

var validOrderStates = map[OrderState]struct{}{
	OrderStateCart:         {},
	OrderStateAddress:      {},
	OrderStateDelivery:     {},
	OrderStatePayment:      {},
	OrderStateConfirmation: {},
	OrderStateComplete:     {},
	OrderStateCanceled:     {},
}

// checkout flow order, canceled is reachable from any non-final state
var orderStateFlow = []OrderState{
	OrderStateCart,
	OrderStateAddress,
	OrderStateDelivery,
	OrderStatePayment,
	OrderStateConfirmation,
	OrderStateComplete,
}

func ToOrderState(s string) (OrderState, error) {
	state := OrderState(s)
	if _, ok := validOrderStates[state]; ok {
		return state, nil
	}

	return "", errors.New("invalid order state")
}

// CanAdvance reports whether an order in state s may move to state to.
func (s OrderState) CanAdvance(to OrderState) bool {
	if s == OrderStateCanceled || s == OrderStateComplete {
		return false
	}
	if to == OrderStateCanceled {
		return true
	}

	fromIdx := slices.Index(orderStateFlow, s)
	toIdx := slices.Index(orderStateFlow, to)
	return fromIdx >= 0 && toIdx > fromIdx
}
