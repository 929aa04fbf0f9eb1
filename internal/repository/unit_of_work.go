package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/subsync/internal/port"
)

type unitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) port.UnitOfWork {
	return &unitOfWork{pool: pool}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(repos port.Repositories) error) (txErr error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	if err := fn(RepositoriesWithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

// RepositoriesWithTx returns repositories sharing tx.
func RepositoriesWithTx(tx pgx.Tx) port.Repositories {
	catalog := NewCatalogWithTx(tx)

	return port.Repositories{
		Subscriptions: NewSubscriptionWithTx(tx),
		ProxyOrders:   NewProxyOrderWithTx(tx),
		OrderCycles:   NewOrderCycleWithTx(tx),
		Orders:        NewOrderWithTx(tx),
		Variants:      catalog,
		Overrides:     catalog,
		Enterprises:   catalog,
		Methods:       catalog,
		Fees:          NewEnterpriseFeeWithTx(tx),
	}
}

// Repositories returns pool backed repositories, each call running in its own transaction.
func Repositories(pool *pgxpool.Pool, lockRetries int) port.Repositories {
	catalog := NewCatalog(pool)

	return port.Repositories{
		Subscriptions: NewSubscription(pool),
		ProxyOrders:   NewProxyOrder(pool),
		OrderCycles:   NewOrderCycle(pool),
		Orders:        NewOrder(pool, lockRetries),
		Variants:      catalog,
		Overrides:     catalog,
		Enterprises:   catalog,
		Methods:       catalog,
		Fees:          NewEnterpriseFee(pool),
	}
}
