package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/shopspring/decimal"
)

type VariantRepository interface {
	GetVariants(ctx context.Context, variantIDs []uuid.UUID) ([]domain.Variant, error)

	ListByProducers(ctx context.Context, producerIDs []uuid.UUID) ([]domain.Variant, error)

	// ListOutgoingExchangeVariantIDs returns distinct variants of outgoing exchanges
	// received by shopID, in any order cycle whether open, upcoming or closed.
	ListOutgoingExchangeVariantIDs(ctx context.Context, shopID uuid.UUID) ([]uuid.UUID, error)
}

type VariantOverrideRepository interface {
	// OverridePrice returns an invalid NullDecimal when the hub has no override.
	OverridePrice(ctx context.Context, hubID, variantID uuid.UUID) (decimal.NullDecimal, error)
}

type EnterpriseRepository interface {
	GetEnterprises(ctx context.Context, enterpriseIDs []uuid.UUID) ([]domain.Enterprise, error)

	// ListRelationshipsPermitting returns relationships whose child is childID.
	ListRelationshipsPermitting(ctx context.Context, childID uuid.UUID) ([]domain.EnterpriseRelationship, error)

	GetCustomer(ctx context.Context, customerID uuid.UUID) (domain.Customer, error)
}

type MethodRepository interface {
	GetShippingMethod(ctx context.Context, shippingMethodID uuid.UUID) (domain.ShippingMethod, error)
	GetPaymentMethod(ctx context.Context, paymentMethodID uuid.UUID) (domain.PaymentMethod, error)
}
