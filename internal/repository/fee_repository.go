package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/subsync/internal/db"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
)

type feeRepository struct {
	q *db.Queries
}

func NewEnterpriseFee(pool *pgxpool.Pool) port.EnterpriseFeeRepository {
	return &feeRepository{q: db.New(pool)}
}

func NewEnterpriseFeeWithTx(tx pgx.Tx) port.EnterpriseFeeRepository {
	return &feeRepository{q: db.New(tx)}
}

func (r *feeRepository) ListCoordinatorFees(ctx context.Context, orderCycleID uuid.UUID) ([]domain.EnterpriseFee, error) {
	rows, err := r.q.ListCoordinatorFees(ctx, orderCycleID)
	if err != nil {
		return nil, fmt.Errorf("q.ListCoordinatorFees: %w", err)
	}

	fees := make([]domain.EnterpriseFee, 0, len(rows))
	for _, row := range rows {
		fee, err := mapDBEnterpriseFeeToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapDBEnterpriseFeeToDomain[%s]: %w", row.ID, err)
		}
		fees = append(fees, fee)
	}

	return fees, nil
}

// ListExchangeFees leaves Exchange.VariantIDs empty, callers take them from the loaded order cycle.
func (r *feeRepository) ListExchangeFees(ctx context.Context, orderCycleID uuid.UUID) ([]domain.ExchangeFee, error) {
	rows, err := r.q.ListExchangeFees(ctx, orderCycleID)
	if err != nil {
		return nil, fmt.Errorf("q.ListExchangeFees: %w", err)
	}

	fees := make([]domain.ExchangeFee, 0, len(rows))
	for _, row := range rows {
		fee, err := mapDBEnterpriseFeeToDomain(db.EnterpriseFee{
			ID:                row.ID,
			EnterpriseID:      row.EnterpriseID,
			Name:              row.Name,
			CalculatorKind:    row.CalculatorKind,
			CalculatorAmount:  row.CalculatorAmount,
			CalculatorPercent: row.CalculatorPercent,
		})
		if err != nil {
			return nil, fmt.Errorf("mapDBEnterpriseFeeToDomain[%s]: %w", row.ID, err)
		}

		fees = append(fees, domain.ExchangeFee{
			Exchange: domain.Exchange{
				ID:           row.ExchangeID,
				OrderCycleID: orderCycleID,
				SenderID:     row.SenderID,
				ReceiverID:   row.ReceiverID,
				Incoming:     row.Incoming,
			},
			Fee: fee,
		})
	}

	return fees, nil
}
