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
)

type orderCycleRepository struct {
	q *db.Queries
}

func NewOrderCycle(pool *pgxpool.Pool) port.OrderCycleRepository {
	return &orderCycleRepository{q: db.New(pool)}
}

func NewOrderCycleWithTx(tx pgx.Tx) port.OrderCycleRepository {
	return &orderCycleRepository{q: db.New(tx)}
}

func (r *orderCycleRepository) GetOrderCycle(ctx context.Context, orderCycleID uuid.UUID) (domain.OrderCycle, error) {
	row, err := r.q.GetOrderCycle(ctx, orderCycleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OrderCycle{}, fmt.Errorf("q.GetOrderCycle: %w", ErrNotFound)
		}
		return domain.OrderCycle{}, fmt.Errorf("q.GetOrderCycle: %w", err)
	}

	exchanges, err := r.listExchanges(ctx, []uuid.UUID{row.ID})
	if err != nil {
		return domain.OrderCycle{}, fmt.Errorf("r.listExchanges: %w", err)
	}

	oc := mapDBOrderCycleToDomain(row)
	oc.Exchanges = exchanges[row.ID]

	return oc, nil
}

func (r *orderCycleRepository) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]domain.OrderCycle, error) {
	bySchedule, err := r.ListBySchedules(ctx, []uuid.UUID{scheduleID})
	if err != nil {
		return nil, err
	}

	return bySchedule[scheduleID], nil
}

// ListBySchedules returns order cycles grouped by schedule, each group ordered by close time.
// An order cycle shared by several schedules appears in each of them.
func (r *orderCycleRepository) ListBySchedules(ctx context.Context, scheduleIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderCycle, error) {
	result := make(map[uuid.UUID][]domain.OrderCycle)
	if len(scheduleIDs) == 0 {
		return result, nil
	}

	rows, err := r.q.ListOrderCyclesBySchedules(ctx, lo.Uniq(scheduleIDs))
	if err != nil {
		return nil, fmt.Errorf("q.ListOrderCyclesBySchedules: %w", err)
	}

	orderCycleIDs := lo.Uniq(lo.Map(rows, func(row db.ListOrderCyclesBySchedulesRow, _ int) uuid.UUID {
		return row.ID
	}))

	exchanges, err := r.listExchanges(ctx, orderCycleIDs)
	if err != nil {
		return nil, fmt.Errorf("r.listExchanges: %w", err)
	}

	for _, row := range rows {
		oc := mapDBOrderCycleToDomain(db.OrderCycle{
			ID:            row.ID,
			Name:          row.Name,
			CoordinatorID: row.CoordinatorID,
			OrdersOpenAt:  row.OrdersOpenAt,
			OrdersCloseAt: row.OrdersCloseAt,
		})
		oc.Exchanges = exchanges[row.ID]
		result[row.ScheduleID] = append(result[row.ScheduleID], oc)
	}

	return result, nil
}

func (r *orderCycleRepository) listExchanges(ctx context.Context, orderCycleIDs []uuid.UUID) (map[uuid.UUID][]domain.Exchange, error) {
	if len(orderCycleIDs) == 0 {
		return nil, nil
	}

	rows, err := r.q.ListExchangesByOrderCycles(ctx, orderCycleIDs)
	if err != nil {
		return nil, fmt.Errorf("q.ListExchangesByOrderCycles: %w", err)
	}

	exchanges := lo.Map(rows, func(row db.ListExchangesByOrderCyclesRow, _ int) domain.Exchange {
		return domain.Exchange{
			ID:           row.ID,
			OrderCycleID: row.OrderCycleID,
			SenderID:     row.SenderID,
			ReceiverID:   row.ReceiverID,
			Incoming:     row.Incoming,
			VariantIDs:   nilSliceIfEmpty(row.VariantIds),
		}
	})

	return lo.GroupBy(exchanges, func(e domain.Exchange) uuid.UUID {
		return e.OrderCycleID
	}), nil
}

func mapDBOrderCycleToDomain(row db.OrderCycle) domain.OrderCycle {
	return domain.OrderCycle{
		ID:            row.ID,
		Name:          row.Name,
		CoordinatorID: row.CoordinatorID,
		Window: domain.OrderCycleWindow{
			OpensAt:  row.OrdersOpenAt,
			ClosesAt: row.OrdersCloseAt,
		},
	}
}
