package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/subsync/internal/db"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/samber/lo"
)

type proxyOrderRepository struct {
	q *db.Queries
}

func NewProxyOrder(pool *pgxpool.Pool) port.ProxyOrderRepository {
	return &proxyOrderRepository{q: db.New(pool)}
}

func NewProxyOrderWithTx(tx pgx.Tx) port.ProxyOrderRepository {
	return &proxyOrderRepository{q: db.New(tx)}
}

func (r *proxyOrderRepository) GetProxyOrder(ctx context.Context, proxyOrderID uuid.UUID) (domain.ProxyOrder, error) {
	row, err := r.q.GetProxyOrder(ctx, proxyOrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ProxyOrder{}, fmt.Errorf("q.GetProxyOrder: %w", ErrNotFound)
		}
		return domain.ProxyOrder{}, fmt.Errorf("q.GetProxyOrder: %w", err)
	}

	return mapDBProxyOrderToDomain(row), nil
}

func (r *proxyOrderRepository) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]domain.ProxyOrder, error) {
	rows, err := r.q.ListProxyOrdersBySubscription(ctx, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("q.ListProxyOrdersBySubscription: %w", err)
	}

	return lo.Map(rows, func(row db.ProxyOrder, _ int) domain.ProxyOrder {
		return mapDBProxyOrderToDomain(row)
	}), nil
}

func (r *proxyOrderRepository) ListPlaceable(ctx context.Context, now time.Time) ([]domain.ProxyOrder, error) {
	rows, err := r.q.ListPlaceableProxyOrders(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("q.ListPlaceableProxyOrders: %w", err)
	}

	return lo.Map(rows, func(row db.ProxyOrder, _ int) domain.ProxyOrder {
		return mapDBProxyOrderToDomain(row)
	}), nil
}

func (r *proxyOrderRepository) ListConfirmable(ctx context.Context, closed domain.TimeRange) ([]domain.ProxyOrder, error) {
	if err := closed.Validate(); err != nil {
		return nil, fmt.Errorf("closed.Validate: %w", err)
	}

	rows, err := r.q.ListConfirmableProxyOrders(ctx, db.ListConfirmableProxyOrdersParams{
		ClosedFrom: closed.From,
		ClosedTo:   closed.To,
	})
	if err != nil {
		return nil, fmt.Errorf("q.ListConfirmableProxyOrders: %w", err)
	}

	return lo.Map(rows, func(row db.ProxyOrder, _ int) domain.ProxyOrder {
		return mapDBProxyOrderToDomain(row)
	}), nil
}

func (r *proxyOrderRepository) InsertProxyOrder(ctx context.Context, subscriptionID, orderCycleID uuid.UUID) (bool, error) {
	rows, err := r.q.InsertProxyOrder(ctx, db.InsertProxyOrderParams{
		SubscriptionID: subscriptionID,
		OrderCycleID:   orderCycleID,
	})
	if err != nil {
		return false, fmt.Errorf("q.InsertProxyOrder: %w", err)
	}

	return rows > 0, nil
}

func (r *proxyOrderRepository) DeleteUnplaced(ctx context.Context, proxyOrderID uuid.UUID) (bool, error) {
	rows, err := r.q.DeleteUnplacedProxyOrder(ctx, proxyOrderID)
	if err != nil {
		return false, fmt.Errorf("q.DeleteUnplacedProxyOrder: %w", err)
	}

	return rows > 0, nil
}

func (r *proxyOrderRepository) SetOrder(ctx context.Context, proxyOrderID, orderID uuid.UUID) error {
	rows, err := r.q.SetProxyOrderOrder(ctx, db.SetProxyOrderOrderParams{
		ID:      proxyOrderID,
		OrderID: &orderID,
	})
	if err != nil {
		return fmt.Errorf("q.SetProxyOrderOrder: %w", err)
	}

	if err := expectOne(rows); err != nil {
		return fmt.Errorf("q.SetProxyOrderOrder: %w", err)
	}

	return nil
}

// MarkPlaced returns ErrNotFound when the proxy order does not exist or is already placed.
func (r *proxyOrderRepository) MarkPlaced(ctx context.Context, proxyOrderID uuid.UUID, at time.Time) error {
	rows, err := r.q.MarkProxyOrderPlaced(ctx, db.MarkProxyOrderPlacedParams{
		ID:       proxyOrderID,
		PlacedAt: &at,
	})
	if err != nil {
		return fmt.Errorf("q.MarkProxyOrderPlaced: %w", err)
	}

	if err := expectOne(rows); err != nil {
		return fmt.Errorf("q.MarkProxyOrderPlaced: %w", err)
	}

	return nil
}

func (r *proxyOrderRepository) MarkConfirmed(ctx context.Context, proxyOrderID uuid.UUID, at time.Time) error {
	rows, err := r.q.MarkProxyOrderConfirmed(ctx, db.MarkProxyOrderConfirmedParams{
		ID:          proxyOrderID,
		ConfirmedAt: &at,
	})
	if err != nil {
		return fmt.Errorf("q.MarkProxyOrderConfirmed: %w", err)
	}

	if err := expectOne(rows); err != nil {
		return fmt.Errorf("q.MarkProxyOrderConfirmed: %w", err)
	}

	return nil
}

func (r *proxyOrderRepository) CancelUnplaced(ctx context.Context, subscriptionID uuid.UUID, now time.Time) (int64, error) {
	rows, err := r.q.CancelUnplacedProxyOrders(ctx, db.CancelUnplacedProxyOrdersParams{
		Now:            &now,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		return 0, fmt.Errorf("q.CancelUnplacedProxyOrders: %w", err)
	}

	return rows, nil
}

func mapDBProxyOrderToDomain(row db.ProxyOrder) domain.ProxyOrder {
	return domain.ProxyOrder{
		ID:             row.ID,
		SubscriptionID: row.SubscriptionID,
		OrderCycleID:   row.OrderCycleID,
		OrderID:        row.OrderID,
		PlacedAt:       row.PlacedAt,
		ConfirmedAt:    row.ConfirmedAt,
		CanceledAt:     row.CanceledAt,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
