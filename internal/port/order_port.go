package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error)

	DeleteOrderItem(ctx context.Context, orderID, variantID uuid.UUID) error

	// AdvanceOrderState moves the order to state under a row lock.
	AdvanceOrderState(ctx context.Context, orderID uuid.UUID, state domain.OrderState, at time.Time) (domain.Order, error)
}
