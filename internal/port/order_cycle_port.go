package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
)

// OrderCycleRepository returns order cycles with their exchanges loaded.
type OrderCycleRepository interface {
	GetOrderCycle(ctx context.Context, orderCycleID uuid.UUID) (domain.OrderCycle, error)

	ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]domain.OrderCycle, error)
	ListBySchedules(ctx context.Context, scheduleIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderCycle, error)
}
