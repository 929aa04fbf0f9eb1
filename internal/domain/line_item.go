package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var ErrUnknownLineItem = errors.New("unknown line item")

type SubscriptionLineItem struct {
	ID             uuid.UUID
	SubscriptionID uuid.UUID
	VariantID      uuid.UUID `validate:"required"`
	Quantity       int       `validate:"gt=0"`
	PriceEstimate  decimal.NullDecimal
}

// LineItemParams is one incoming line item. A zero ID inserts, a known ID
// updates, and Remove deletes the identified item.
type LineItemParams struct {
	ID        uuid.UUID
	VariantID uuid.UUID
	Quantity  int
	Remove    bool
}

type LineItemChanges struct {
	Insert []SubscriptionLineItem
	Update []SubscriptionLineItem
	Delete []SubscriptionLineItem
}

func (c LineItemChanges) Empty() bool {
	return len(c.Insert) == 0 && len(c.Update) == 0 && len(c.Delete) == 0
}

// Apply returns the resulting line items, preserving the order of existing items.
func (c LineItemChanges) Apply(existing []SubscriptionLineItem) []SubscriptionLineItem {
	deleted := lo.SliceToMap(c.Delete, func(li SubscriptionLineItem) (uuid.UUID, struct{}) {
		return li.ID, struct{}{}
	})
	updated := lo.KeyBy(c.Update, func(li SubscriptionLineItem) uuid.UUID { return li.ID })

	result := make([]SubscriptionLineItem, 0, len(existing)+len(c.Insert))
	for _, li := range existing {
		if _, ok := deleted[li.ID]; ok {
			continue
		}
		if u, ok := updated[li.ID]; ok {
			li = u
		}
		result = append(result, li)
	}

	return append(result, c.Insert...)
}

// DiffLineItems computes explicit insert, update and delete sets. Existing
// items that are not mentioned in incoming are left untouched.
func DiffLineItems(existing []SubscriptionLineItem, incoming []LineItemParams) (LineItemChanges, error) {
	var changes LineItemChanges

	byID := lo.KeyBy(existing, func(li SubscriptionLineItem) uuid.UUID { return li.ID })

	for _, in := range incoming {
		if in.ID == uuid.Nil {
			if in.Remove {
				continue
			}
			changes.Insert = append(changes.Insert, SubscriptionLineItem{
				VariantID: in.VariantID,
				Quantity:  in.Quantity,
			})
			continue
		}

		current, ok := byID[in.ID]
		if !ok {
			return LineItemChanges{}, fmt.Errorf("line item[%s]: %w", in.ID, ErrUnknownLineItem)
		}

		if in.Remove {
			changes.Delete = append(changes.Delete, current)
			continue
		}

		if in.VariantID != uuid.Nil {
			current.VariantID = in.VariantID
		}
		current.Quantity = in.Quantity
		changes.Update = append(changes.Update, current)
	}

	return changes, nil
}
