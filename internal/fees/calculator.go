// Package fees computes the enterprise fees charged on a variant distributed
// by a shop through an order cycle.
package fees

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type factory struct {
	repo port.EnterpriseFeeRepository
}

func NewFactory(repo port.EnterpriseFeeRepository) port.FeeCalculatorFactory {
	return &factory{repo: repo}
}

// NewFeeCalculator loads the coordinator and exchange fees of orderCycle once,
// the returned calculator performs no further reads.
func (f *factory) NewFeeCalculator(ctx context.Context, shopID uuid.UUID, orderCycle domain.OrderCycle) (port.FeeCalculator, error) {
	coordinatorFees, err := f.repo.ListCoordinatorFees(ctx, orderCycle.ID)
	if err != nil {
		return nil, fmt.Errorf("repo.ListCoordinatorFees: %w", err)
	}

	exchangeFees, err := f.repo.ListExchangeFees(ctx, orderCycle.ID)
	if err != nil {
		return nil, fmt.Errorf("repo.ListExchangeFees: %w", err)
	}

	return New(shopID, orderCycle, coordinatorFees, exchangeFees), nil
}

// EnterpriseFeeCalculator indexes fees per variant for one shop and order cycle.
type EnterpriseFeeCalculator struct {
	shopID          uuid.UUID
	coordinatorFees []domain.EnterpriseFee
	exchangeFees    []domain.ExchangeFee
}

// New attaches the variant sets of orderCycle's exchanges to exchangeFees,
// which may have been loaded without them.
func New(shopID uuid.UUID, orderCycle domain.OrderCycle, coordinatorFees []domain.EnterpriseFee, exchangeFees []domain.ExchangeFee) *EnterpriseFeeCalculator {
	exchanges := lo.KeyBy(orderCycle.Exchanges, func(e domain.Exchange) uuid.UUID { return e.ID })

	indexed := make([]domain.ExchangeFee, 0, len(exchangeFees))
	for _, xf := range exchangeFees {
		if e, ok := exchanges[xf.Exchange.ID]; ok && len(xf.Exchange.VariantIDs) == 0 {
			xf.Exchange.VariantIDs = e.VariantIDs
		}
		indexed = append(indexed, xf)
	}

	return &EnterpriseFeeCalculator{
		shopID:          shopID,
		coordinatorFees: coordinatorFees,
		exchangeFees:    indexed,
	}
}

// IndexedFeesFor sums the fees on one unit of variant: every coordinator fee,
// fees on the incoming exchange from its producer and fees on the outgoing
// exchange to the shop, the exchanges carrying the variant.
func (c *EnterpriseFeeCalculator) IndexedFeesFor(variant domain.Variant) decimal.Decimal {
	unit := []domain.LineAmount{{Price: variant.Price.Amount, Quantity: 1}}

	total := decimal.Zero
	for _, fee := range c.coordinatorFees {
		total = total.Add(fee.Calculator.Compute(unit))
	}

	for _, xf := range c.exchangeFees {
		if !c.applies(xf.Exchange, variant) {
			continue
		}
		total = total.Add(xf.Fee.Calculator.Compute(unit))
	}

	return total
}

func (c *EnterpriseFeeCalculator) applies(e domain.Exchange, variant domain.Variant) bool {
	if !e.HasVariant(variant.ID) {
		return false
	}

	if e.Incoming {
		return e.SenderID == variant.ProducerID
	}

	return e.ReceiverID == c.shopID
}
