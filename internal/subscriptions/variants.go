package subscriptions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/samber/lo"
)

// VariantsList decides which variants a shop may subscribe customers to.
type VariantsList struct {
	variants    port.VariantRepository
	enterprises port.EnterpriseRepository
	orderCycles port.OrderCycleRepository
	nowFunc     func() time.Time
}

func NewVariantsList(
	variants port.VariantRepository,
	enterprises port.EnterpriseRepository,
	orderCycles port.OrderCycleRepository,
) *VariantsList {
	return &VariantsList{
		variants:    variants,
		enterprises: enterprises,
		orderCycles: orderCycles,
		nowFunc:     time.Now,
	}
}

// EligibleVariants returns variants produced by the shop or by producers that
// granted it add_to_order_cycle, plus variants the shop receives through an
// outgoing exchange of any order cycle, past ones included. Incoming exchange
// membership alone never makes a variant eligible.
func (l *VariantsList) EligibleVariants(ctx context.Context, shopID uuid.UUID) ([]domain.Variant, error) {
	producerIDs, err := l.permittedProducerIDs(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("permittedProducerIDs: %w", err)
	}

	produced, err := l.variants.ListByProducers(ctx, producerIDs)
	if err != nil {
		return nil, fmt.Errorf("variants.ListByProducers: %w", err)
	}

	outgoingIDs, err := l.variants.ListOutgoingExchangeVariantIDs(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("variants.ListOutgoingExchangeVariantIDs: %w", err)
	}

	producedIDs := lo.SliceToMap(produced, func(v domain.Variant) (uuid.UUID, struct{}) { return v.ID, struct{}{} })
	outgoingIDs = lo.Reject(outgoingIDs, func(id uuid.UUID, _ int) bool {
		_, ok := producedIDs[id]
		return ok
	})

	distributed, err := l.variants.GetVariants(ctx, outgoingIDs)
	if err != nil {
		return nil, fmt.Errorf("variants.GetVariants: %w", err)
	}

	eligible := lo.Reject(append(produced, distributed...), func(v domain.Variant, _ int) bool {
		return v.Deleted()
	})

	return lo.UniqBy(eligible, func(v domain.Variant) uuid.UUID { return v.ID }), nil
}

// IsEligible reports whether variantID is among the shop's eligible variants.
func (l *VariantsList) IsEligible(ctx context.Context, shopID, variantID uuid.UUID) (bool, error) {
	eligible, err := l.EligibleVariants(ctx, shopID)
	if err != nil {
		return false, err
	}

	return lo.ContainsBy(eligible, func(v domain.Variant) bool { return v.ID == variantID }), nil
}

// InOpenAndUpcomingOrderCycles reports whether the variant is distributed to
// the shop by an outgoing exchange of a not yet closed order cycle of the schedule.
func (l *VariantsList) InOpenAndUpcomingOrderCycles(ctx context.Context, shopID, scheduleID, variantID uuid.UUID) (bool, error) {
	cycles, err := l.orderCycles.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return false, fmt.Errorf("orderCycles.ListBySchedule: %w", err)
	}

	now := l.nowFunc()

	return lo.ContainsBy(cycles, func(oc domain.OrderCycle) bool {
		return !oc.Window.IsClosed(now) && oc.DistributesVariant(shopID, variantID)
	}), nil
}

func (l *VariantsList) permittedProducerIDs(ctx context.Context, shopID uuid.UUID) ([]uuid.UUID, error) {
	relationships, err := l.enterprises.ListRelationshipsPermitting(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("enterprises.ListRelationshipsPermitting: %w", err)
	}

	ids := []uuid.UUID{shopID}
	for _, r := range relationships {
		if r.Grants(domain.PermissionAddToOrderCycle) {
			ids = append(ids, r.ParentID)
		}
	}

	return lo.Uniq(ids), nil
}
