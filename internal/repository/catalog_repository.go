package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/subsync/internal/db"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// catalogRepository serves the read-only catalog: variants, overrides, enterprises and methods.
type catalogRepository struct {
	q *db.Queries
}

type Catalog interface {
	port.VariantRepository
	port.VariantOverrideRepository
	port.EnterpriseRepository
	port.MethodRepository
}

func NewCatalog(pool *pgxpool.Pool) Catalog {
	return &catalogRepository{q: db.New(pool)}
}

func NewCatalogWithTx(tx pgx.Tx) Catalog {
	return &catalogRepository{q: db.New(tx)}
}

func (r *catalogRepository) GetVariants(ctx context.Context, variantIDs []uuid.UUID) ([]domain.Variant, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}

	rows, err := r.q.GetVariants(ctx, lo.Uniq(variantIDs))
	if err != nil {
		return nil, fmt.Errorf("q.GetVariants: %w", err)
	}

	variants, err := mapDBVariantsToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("mapDBVariantsToDomain: %w", err)
	}

	return variants, nil
}

func (r *catalogRepository) ListByProducers(ctx context.Context, producerIDs []uuid.UUID) ([]domain.Variant, error) {
	if len(producerIDs) == 0 {
		return nil, nil
	}

	rows, err := r.q.ListVariantsByProducers(ctx, lo.Uniq(producerIDs))
	if err != nil {
		return nil, fmt.Errorf("q.ListVariantsByProducers: %w", err)
	}

	variants, err := mapDBVariantsToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("mapDBVariantsToDomain: %w", err)
	}

	return variants, nil
}

func (r *catalogRepository) ListOutgoingExchangeVariantIDs(ctx context.Context, shopID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := r.q.ListOutgoingExchangeVariantIDs(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOutgoingExchangeVariantIDs: %w", err)
	}

	return ids, nil
}

func (r *catalogRepository) OverridePrice(ctx context.Context, hubID, variantID uuid.UUID) (decimal.NullDecimal, error) {
	price, err := r.q.GetVariantOverridePrice(ctx, db.GetVariantOverridePriceParams{
		HubID:     hubID,
		VariantID: variantID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.NullDecimal{}, nil
		}
		return decimal.NullDecimal{}, fmt.Errorf("q.GetVariantOverridePrice: %w", err)
	}

	return price, nil
}

func (r *catalogRepository) GetEnterprises(ctx context.Context, enterpriseIDs []uuid.UUID) ([]domain.Enterprise, error) {
	if len(enterpriseIDs) == 0 {
		return nil, nil
	}

	rows, err := r.q.GetEnterprises(ctx, lo.Uniq(enterpriseIDs))
	if err != nil {
		return nil, fmt.Errorf("q.GetEnterprises: %w", err)
	}

	return lo.Map(rows, func(row db.GetEnterprisesRow, _ int) domain.Enterprise {
		return domain.Enterprise{
			ID:                row.ID,
			Name:              row.Name,
			IsPrimaryProducer: row.IsPrimaryProducer,
		}
	}), nil
}

func (r *catalogRepository) ListRelationshipsPermitting(ctx context.Context, childID uuid.UUID) ([]domain.EnterpriseRelationship, error) {
	rows, err := r.q.ListRelationshipsByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("q.ListRelationshipsByChild: %w", err)
	}

	relationships := make([]domain.EnterpriseRelationship, 0, len(rows))
	for _, row := range rows {
		permissions := make([]domain.Permission, 0, len(row.Permissions))
		for _, p := range row.Permissions {
			permission, err := domain.ToPermission(p)
			if err != nil {
				return nil, fmt.Errorf("domain.ToPermission[%s]: %w", p, err)
			}
			permissions = append(permissions, permission)
		}

		relationships = append(relationships, domain.EnterpriseRelationship{
			ID:          row.ID,
			ParentID:    row.ParentID,
			ChildID:     row.ChildID,
			Permissions: permissions,
		})
	}

	return relationships, nil
}

func (r *catalogRepository) GetCustomer(ctx context.Context, customerID uuid.UUID) (domain.Customer, error) {
	row, err := r.q.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, fmt.Errorf("q.GetCustomer: %w", ErrNotFound)
		}
		return domain.Customer{}, fmt.Errorf("q.GetCustomer: %w", err)
	}

	return domain.Customer{
		ID:           row.ID,
		EnterpriseID: row.EnterpriseID,
		Email:        row.Email,
		Name:         row.Name,
	}, nil
}

func (r *catalogRepository) GetShippingMethod(ctx context.Context, shippingMethodID uuid.UUID) (domain.ShippingMethod, error) {
	row, err := r.q.GetShippingMethod(ctx, shippingMethodID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ShippingMethod{}, fmt.Errorf("q.GetShippingMethod: %w", ErrNotFound)
		}
		return domain.ShippingMethod{}, fmt.Errorf("q.GetShippingMethod: %w", err)
	}

	calc, err := mapDBCalculatorToDomain(row.CalculatorKind, row.CalculatorAmount, row.CalculatorPercent)
	if err != nil {
		return domain.ShippingMethod{}, fmt.Errorf("mapDBCalculatorToDomain: %w", err)
	}

	return domain.ShippingMethod{
		ID:            row.ID,
		DistributorID: row.DistributorID,
		Name:          row.Name,
		Calculator:    calc,
	}, nil
}

func (r *catalogRepository) GetPaymentMethod(ctx context.Context, paymentMethodID uuid.UUID) (domain.PaymentMethod, error) {
	row, err := r.q.GetPaymentMethod(ctx, paymentMethodID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PaymentMethod{}, fmt.Errorf("q.GetPaymentMethod: %w", ErrNotFound)
		}
		return domain.PaymentMethod{}, fmt.Errorf("q.GetPaymentMethod: %w", err)
	}

	calc, err := mapDBCalculatorToDomain(row.CalculatorKind, row.CalculatorAmount, row.CalculatorPercent)
	if err != nil {
		return domain.PaymentMethod{}, fmt.Errorf("mapDBCalculatorToDomain: %w", err)
	}

	return domain.PaymentMethod{
		ID:            row.ID,
		DistributorID: row.DistributorID,
		Name:          row.Name,
		Calculator:    calc,
	}, nil
}
