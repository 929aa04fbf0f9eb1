package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffLineItems(t *testing.T) {
	a := SubscriptionLineItem{ID: uuid.New(), VariantID: uuid.New(), Quantity: 1}
	b := SubscriptionLineItem{ID: uuid.New(), VariantID: uuid.New(), Quantity: 2}
	existing := []SubscriptionLineItem{a, b}

	newVariant := uuid.New()

	tests := []struct {
		name     string
		incoming []LineItemParams
		want     LineItemChanges
		wantErr  error
	}{
		{
			name: "no changes",
		},
		{
			name:     "insert",
			incoming: []LineItemParams{{VariantID: newVariant, Quantity: 3}},
			want:     LineItemChanges{Insert: []SubscriptionLineItem{{VariantID: newVariant, Quantity: 3}}},
		},
		{
			name:     "removed insert is ignored",
			incoming: []LineItemParams{{VariantID: newVariant, Quantity: 3, Remove: true}},
		},
		{
			name:     "update quantity keeps variant",
			incoming: []LineItemParams{{ID: a.ID, Quantity: 5}},
			want: LineItemChanges{Update: []SubscriptionLineItem{
				{ID: a.ID, VariantID: a.VariantID, Quantity: 5},
			}},
		},
		{
			name:     "update variant",
			incoming: []LineItemParams{{ID: b.ID, VariantID: newVariant, Quantity: 2}},
			want: LineItemChanges{Update: []SubscriptionLineItem{
				{ID: b.ID, VariantID: newVariant, Quantity: 2},
			}},
		},
		{
			name:     "remove",
			incoming: []LineItemParams{{ID: b.ID, Remove: true}},
			want:     LineItemChanges{Delete: []SubscriptionLineItem{b}},
		},
		{
			name: "mixed",
			incoming: []LineItemParams{
				{ID: a.ID, Remove: true},
				{ID: b.ID, Quantity: 4},
				{VariantID: newVariant, Quantity: 1},
			},
			want: LineItemChanges{
				Insert: []SubscriptionLineItem{{VariantID: newVariant, Quantity: 1}},
				Update: []SubscriptionLineItem{{ID: b.ID, VariantID: b.VariantID, Quantity: 4}},
				Delete: []SubscriptionLineItem{a},
			},
		},
		{
			name:     "unknown id",
			incoming: []LineItemParams{{ID: a.ID, Quantity: 2}, {ID: uuid.New(), Quantity: 1}},
			wantErr:  ErrUnknownLineItem,
		},
		{
			name:     "unknown id removal",
			incoming: []LineItemParams{{ID: uuid.New(), Remove: true}},
			wantErr:  ErrUnknownLineItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiffLineItems(existing, tt.incoming)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.Empty())
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Empty(), got.Empty())
		})
	}
}

func TestLineItemChangesApply(t *testing.T) {
	a := SubscriptionLineItem{ID: uuid.New(), VariantID: uuid.New(), Quantity: 1}
	b := SubscriptionLineItem{ID: uuid.New(), VariantID: uuid.New(), Quantity: 2}
	c := SubscriptionLineItem{ID: uuid.New(), VariantID: uuid.New(), Quantity: 3}
	inserted := SubscriptionLineItem{VariantID: uuid.New(), Quantity: 4}

	changes, err := DiffLineItems([]SubscriptionLineItem{a, b, c}, []LineItemParams{
		{VariantID: inserted.VariantID, Quantity: inserted.Quantity},
		{ID: c.ID, Quantity: 6},
		{ID: a.ID, Remove: true},
	})
	require.NoError(t, err)

	updated := c
	updated.Quantity = 6

	assert.Equal(t, []SubscriptionLineItem{b, updated, inserted}, changes.Apply([]SubscriptionLineItem{a, b, c}))
}
