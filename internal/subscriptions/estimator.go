package subscriptions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Estimator recomputes the cached price estimates of a subscription.
type Estimator struct {
	orderCycles port.OrderCycleRepository
	variants    port.VariantRepository
	overrides   port.VariantOverrideRepository
	methods     port.MethodRepository
	feeFactory  port.FeeCalculatorFactory
	nowFunc     func() time.Time
}

func NewEstimator(
	orderCycles port.OrderCycleRepository,
	variants port.VariantRepository,
	overrides port.VariantOverrideRepository,
	methods port.MethodRepository,
	feeFactory port.FeeCalculatorFactory,
) *Estimator {
	return &Estimator{
		orderCycles: orderCycles,
		variants:    variants,
		overrides:   overrides,
		methods:     methods,
		feeFactory:  feeFactory,
		nowFunc:     time.Now,
	}
}

// Estimate sets the price estimate of every line item of sub and its shipping
// and payment fee estimates. Without a shop or a current or next order cycle
// line items are reset to their variant price. Nothing is persisted.
func (e *Estimator) Estimate(ctx context.Context, sub *domain.Subscription) error {
	if err := e.estimateLineItems(ctx, sub); err != nil {
		return fmt.Errorf("estimateLineItems: %w", err)
	}

	if err := e.estimateFees(ctx, sub); err != nil {
		return fmt.Errorf("estimateFees: %w", err)
	}

	return nil
}

func (e *Estimator) estimateLineItems(ctx context.Context, sub *domain.Subscription) error {
	variantIDs := lo.Map(sub.LineItems, func(li domain.SubscriptionLineItem, _ int) uuid.UUID { return li.VariantID })

	variants, err := e.variants.GetVariants(ctx, variantIDs)
	if err != nil {
		return fmt.Errorf("variants.GetVariants: %w", err)
	}

	byID := lo.KeyBy(variants, func(v domain.Variant) uuid.UUID { return v.ID })

	calculator, err := e.feeCalculator(ctx, *sub)
	if err != nil {
		return fmt.Errorf("feeCalculator: %w", err)
	}

	for i, li := range sub.LineItems {
		variant, ok := byID[li.VariantID]
		if !ok {
			return fmt.Errorf("variant[%s] not found", li.VariantID)
		}

		if calculator == nil {
			sub.LineItems[i].PriceEstimate = decimal.NewNullDecimal(variant.Price.Amount)
			continue
		}

		override, err := e.overrides.OverridePrice(ctx, sub.ShopID, variant.ID)
		if err != nil {
			return fmt.Errorf("overrides.OverridePrice: %w", err)
		}
		if override.Valid {
			variant.Price.Amount = override.Decimal
		}

		price := variant.Price.Amount.Add(calculator.IndexedFeesFor(variant))
		sub.LineItems[i].PriceEstimate = decimal.NewNullDecimal(price)
	}

	return nil
}

// feeCalculator returns nil when no calculator can be built.
func (e *Estimator) feeCalculator(ctx context.Context, sub domain.Subscription) (port.FeeCalculator, error) {
	if sub.ShopID == uuid.Nil || sub.ScheduleID == uuid.Nil {
		return nil, nil
	}

	cycles, err := e.orderCycles.ListBySchedule(ctx, sub.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("orderCycles.ListBySchedule: %w", err)
	}

	oc, ok := domain.CurrentOrNext(cycles, e.nowFunc())
	if !ok {
		return nil, nil
	}

	calculator, err := e.feeFactory.NewFeeCalculator(ctx, sub.ShopID, oc)
	if err != nil {
		return nil, fmt.Errorf("feeFactory.NewFeeCalculator: %w", err)
	}

	return calculator, nil
}

func (e *Estimator) estimateFees(ctx context.Context, sub *domain.Subscription) error {
	lines := sub.ItemEstimates()

	sub.ShippingFeeEstimate = decimal.Zero
	if sub.ShippingMethodID != uuid.Nil {
		method, err := e.methods.GetShippingMethod(ctx, sub.ShippingMethodID)
		if err != nil {
			return fmt.Errorf("methods.GetShippingMethod: %w", err)
		}
		sub.ShippingFeeEstimate = method.Calculator.Compute(lines)
	}

	sub.PaymentFeeEstimate = decimal.Zero
	if sub.PaymentMethodID != uuid.Nil {
		method, err := e.methods.GetPaymentMethod(ctx, sub.PaymentMethodID)
		if err != nil {
			return fmt.Errorf("methods.GetPaymentMethod: %w", err)
		}
		sub.PaymentFeeEstimate = method.Calculator.Compute(lines)
	}

	return nil
}
