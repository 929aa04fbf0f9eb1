package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/subsync/internal/db"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/port"
)

const defaultLockRetries = 3

// retryable SQLSTATE codes: serialization_failure, deadlock_detected, lock_not_available
var retryableCodes = map[string]struct{}{
	"40001": {},
	"40P01": {},
	"55P03": {},
}

type orderRepository struct {
	q           *db.Queries
	dbtx        db.DBTX
	lockRetries int
}

// NewOrder returns a repository retrying state transitions up to lockRetries times
// on lock conflicts. Non-positive lockRetries falls back to the default.
func NewOrder(pool *pgxpool.Pool, lockRetries int) port.OrderRepository {
	if lockRetries <= 0 {
		lockRetries = defaultLockRetries
	}

	return &orderRepository{
		q:           db.New(pool),
		dbtx:        pool,
		lockRetries: lockRetries,
	}
}

// NewOrderWithTx never retries, a failed statement aborts the surrounding transaction.
func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:           db.New(tx),
		dbtx:        tx,
		lockRetries: 1,
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Order{}, fmt.Errorf("q.GetOrder: %w", ErrNotFound)
			}
			return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
		}

		return loadOrder(ctx, q, dbOrder)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error) {
	if order.Number == "" {
		return uuid.Nil, errors.New("order number is empty")
	}

	state := order.State
	if state == "" {
		state = domain.OrderStateCart
	}

	orderID, err := withTx(ctx, r.dbtx, func(q *db.Queries) (uuid.UUID, error) {
		billAddressID, err := q.InsertAddress(ctx, mapDomainAddressToInsertParams(order.BillAddress))
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertAddress[bill]: %w", err)
		}

		shipAddressID, err := q.InsertAddress(ctx, mapDomainAddressToInsertParams(order.ShipAddress))
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertAddress[ship]: %w", err)
		}

		orderID, err := q.InsertOrder(ctx, db.InsertOrderParams{
			Number:           order.Number,
			ShopID:           order.ShopID,
			CustomerID:       order.CustomerID,
			OrderCycleID:     order.OrderCycleID,
			ShippingMethodID: order.ShippingMethodID,
			PaymentMethodID:  order.PaymentMethodID,
			BillAddressID:    billAddressID,
			ShipAddressID:    shipAddressID,
			State:            string(state),
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertOrder: %w", err)
		}

		for _, item := range order.Items {
			arg := db.InsertOrderItemParams{
				OrderID:       orderID,
				VariantID:     item.VariantID,
				Quantity:      int32(item.Quantity),
				PriceAmount:   item.Price.Amount,
				PriceCurrency: item.Price.Currency.String(),
			}
			if err := q.InsertOrderItem(ctx, arg); err != nil {
				return uuid.Nil, fmt.Errorf("q.InsertOrderItem: %w", err)
			}
		}

		return orderID, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("withTx: %w", err)
	}

	return orderID, nil
}

func (r *orderRepository) DeleteOrderItem(ctx context.Context, orderID, variantID uuid.UUID) error {
	rows, err := r.q.DeleteOrderItem(ctx, db.DeleteOrderItemParams{
		OrderID:   orderID,
		VariantID: variantID,
	})
	if err != nil {
		return fmt.Errorf("q.DeleteOrderItem: %w", err)
	}

	if err := expectOne(rows); err != nil {
		return fmt.Errorf("q.DeleteOrderItem: %w", err)
	}

	return nil
}

// AdvanceOrderState locks the order row, checks the transition and bumps lock_version.
// Lock conflicts and concurrent modifications are retried when the repository owns the transaction.
func (r *orderRepository) AdvanceOrderState(ctx context.Context, orderID uuid.UUID, state domain.OrderState, at time.Time) (domain.Order, error) {
	attempts := r.lockRetries
	if inTx(r.dbtx) {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.Order{}, fmt.Errorf("ctx.Err: %w", err)
		}

		order, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Order, error) {
			return advanceOrderState(ctx, q, orderID, state, at)
		})
		if err == nil {
			return order, nil
		}

		lastErr = err
		if !isRetryable(err) {
			break
		}
	}

	return domain.Order{}, fmt.Errorf("withTx: %w", lastErr)
}

func advanceOrderState(ctx context.Context, q *db.Queries, orderID uuid.UUID, state domain.OrderState, at time.Time) (domain.Order, error) {
	dbOrder, err := q.GetOrderForUpdate(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("q.GetOrderForUpdate: %w", ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("q.GetOrderForUpdate: %w", err)
	}

	current, err := domain.ToOrderState(dbOrder.State)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.ToOrderState[%s]: %w", dbOrder.State, err)
	}

	if !current.CanAdvance(state) {
		return domain.Order{}, fmt.Errorf("%s -> %s: %w", current, state, domain.ErrInvalidStateTransition)
	}

	completedAt := dbOrder.CompletedAt
	if state == domain.OrderStateComplete {
		completedAt = &at
	}

	rows, err := q.UpdateOrderState(ctx, db.UpdateOrderStateParams{
		State:       string(state),
		CompletedAt: completedAt,
		ID:          orderID,
		LockVersion: dbOrder.LockVersion,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.UpdateOrderState: %w", err)
	}

	if rows == 0 {
		return domain.Order{}, fmt.Errorf("q.UpdateOrderState: %w", ErrStaleOrder)
	}

	dbOrder.State = string(state)
	dbOrder.CompletedAt = completedAt
	dbOrder.LockVersion++

	return loadOrder(ctx, q, dbOrder)
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrStaleOrder) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		_, ok := retryableCodes[pgErr.Code]
		return ok
	}

	return false
}

// loadOrder fetches the addresses and items of dbOrder.
func loadOrder(ctx context.Context, q *db.Queries, dbOrder db.Order) (domain.Order, error) {
	billAddress, err := q.GetAddress(ctx, dbOrder.BillAddressID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetAddress[bill]: %w", err)
	}

	shipAddress, err := q.GetAddress(ctx, dbOrder.ShipAddressID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetAddress[ship]: %w", err)
	}

	dbItems, err := q.ListOrderItems(ctx, dbOrder.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.ListOrderItems: %w", err)
	}

	order, err := mapDBOrderToDomain(dbOrder, dbItems)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapDBOrderToDomain: %w", err)
	}

	order.BillAddress = mapDBAddressToDomain(billAddress)
	order.ShipAddress = mapDBAddressToDomain(shipAddress)

	return order, nil
}

func mapDBOrderItemsToDomain(rows []db.ListOrderItemsRow) ([]domain.OrderItem, error) {
	var items []domain.OrderItem

	for _, row := range rows {
		price, err := mapDBMoneyToDomain(row.PriceAmount, row.PriceCurrency)
		if err != nil {
			return nil, fmt.Errorf("mapDBMoneyToDomain: %w", err)
		}

		items = append(items, domain.OrderItem{
			ID:        row.ID,
			VariantID: row.VariantID,
			Quantity:  int(row.Quantity),
			Price:     price,
			CreatedAt: row.CreatedAt,
		})
	}

	return items, nil
}

func mapDBOrderToDomain(dbOrder db.Order, dbItems []db.ListOrderItemsRow) (domain.Order, error) {
	var o domain.Order

	items, err := mapDBOrderItemsToDomain(dbItems)
	if err != nil {
		return o, fmt.Errorf("mapDBOrderItemsToDomain: %w", err)
	}

	state, err := domain.ToOrderState(dbOrder.State)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderState[%s]: %w", dbOrder.State, err)
	}

	return domain.Order{
		ID:               dbOrder.ID,
		Number:           dbOrder.Number,
		ShopID:           dbOrder.ShopID,
		CustomerID:       dbOrder.CustomerID,
		OrderCycleID:     dbOrder.OrderCycleID,
		ShippingMethodID: dbOrder.ShippingMethodID,
		PaymentMethodID:  dbOrder.PaymentMethodID,
		State:            state,
		Items:            items,
		LockVersion:      int(dbOrder.LockVersion),
		CompletedAt:      dbOrder.CompletedAt,
		CreatedAt:        dbOrder.CreatedAt,
		UpdatedAt:        dbOrder.UpdatedAt,
	}, nil
}
