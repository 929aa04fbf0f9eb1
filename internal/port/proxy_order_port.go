package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
)

type ProxyOrderRepository interface {
	GetProxyOrder(ctx context.Context, proxyOrderID uuid.UUID) (domain.ProxyOrder, error)
	ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]domain.ProxyOrder, error)

	// ListPlaceable returns unplaced, uncanceled proxy orders in order cycles open at now
	// whose subscriptions are neither paused nor canceled.
	ListPlaceable(ctx context.Context, now time.Time) ([]domain.ProxyOrder, error)
	// ListConfirmable returns placed, unconfirmed proxy orders whose order cycle closed within closed.
	ListConfirmable(ctx context.Context, closed domain.TimeRange) ([]domain.ProxyOrder, error)

	// InsertProxyOrder is a no-op returning false when the pair already exists.
	InsertProxyOrder(ctx context.Context, subscriptionID, orderCycleID uuid.UUID) (bool, error)
	// DeleteUnplaced never deletes a placed proxy order or one linked to an order,
	// and reports whether a row was removed.
	DeleteUnplaced(ctx context.Context, proxyOrderID uuid.UUID) (bool, error)

	SetOrder(ctx context.Context, proxyOrderID, orderID uuid.UUID) error
	MarkPlaced(ctx context.Context, proxyOrderID uuid.UUID, at time.Time) error
	MarkConfirmed(ctx context.Context, proxyOrderID uuid.UUID, at time.Time) error

	// CancelUnplaced cancels unplaced proxy orders of a subscription in cycles not closed at now.
	CancelUnplaced(ctx context.Context, subscriptionID uuid.UUID, now time.Time) (int64, error)
}
