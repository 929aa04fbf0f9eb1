package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/shopspring/decimal"
)

// FeeCalculator returns the enterprise fees charged on one unit of a variant.
type FeeCalculator interface {
	IndexedFeesFor(variant domain.Variant) decimal.Decimal
}

type FeeCalculatorFactory interface {
	NewFeeCalculator(ctx context.Context, shopID uuid.UUID, orderCycle domain.OrderCycle) (FeeCalculator, error)
}

type EnterpriseFeeRepository interface {
	ListCoordinatorFees(ctx context.Context, orderCycleID uuid.UUID) ([]domain.EnterpriseFee, error)
	ListExchangeFees(ctx context.Context, orderCycleID uuid.UUID) ([]domain.ExchangeFee, error)
}
