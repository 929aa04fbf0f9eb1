package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/logger"
	"github.com/nikolayk812/subsync/internal/metrics"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// SyncTarget is either a single subscription or a batch of them.
type SyncTarget interface {
	subscriptions() []domain.Subscription
}

type single struct {
	sub domain.Subscription
}

func (s single) subscriptions() []domain.Subscription {
	return []domain.Subscription{s.sub}
}

type batch struct {
	subs []domain.Subscription
}

func (b batch) subscriptions() []domain.Subscription {
	return b.subs
}

func Single(sub domain.Subscription) SyncTarget {
	return single{sub: sub}
}

func Batch(subs []domain.Subscription) SyncTarget {
	return batch{subs: subs}
}

type SyncResult struct {
	Created int
	Removed int
	// Planned holds the proxy orders an unsaved subscription would get. Nothing is persisted for them.
	Planned []domain.ProxyOrder
}

func (r SyncResult) add(other SyncResult) SyncResult {
	return SyncResult{
		Created: r.Created + other.Created,
		Removed: r.Removed + other.Removed,
		Planned: append(r.Planned, other.Planned...),
	}
}

// ProxyOrderSyncer reconciles the proxy orders of subscriptions with the order
// cycles of their schedules. It must not run concurrently for one subscription.
type ProxyOrderSyncer struct {
	subs        []domain.Subscription
	orderCycles port.OrderCycleRepository
	proxyOrders port.ProxyOrderRepository
	logger      *zap.Logger
	nowFunc     func() time.Time
}

func NewProxyOrderSyncer(
	target SyncTarget,
	orderCycles port.OrderCycleRepository,
	proxyOrders port.ProxyOrderRepository,
	log *zap.Logger,
) (*ProxyOrderSyncer, error) {
	if target == nil {
		return nil, ErrInvalidSyncTarget
	}

	if orderCycles == nil || proxyOrders == nil {
		return nil, errors.New("repositories must not be nil")
	}

	return &ProxyOrderSyncer{
		subs:        target.subscriptions(),
		orderCycles: orderCycles,
		proxyOrders: proxyOrders,
		logger:      logger.OrNop(log),
		nowFunc:     time.Now,
	}, nil
}

// Sync creates proxy orders for relevant order cycles and removes unplaced
// proxy orders whose order cycle is no longer relevant and not yet closed.
// Unsaved subscriptions are only planned into SyncResult.Planned.
// A failing subscription does not stop the others, errors are joined.
func (s *ProxyOrderSyncer) Sync(ctx context.Context) (SyncResult, error) {
	var result SyncResult

	now := s.nowFunc()

	scheduleIDs := lo.Uniq(lo.Map(s.subs, func(sub domain.Subscription, _ int) uuid.UUID {
		return sub.ScheduleID
	}))

	cycles, err := s.orderCycles.ListBySchedules(ctx, scheduleIDs)
	if err != nil {
		return result, fmt.Errorf("orderCycles.ListBySchedules: %w", err)
	}

	var errs []error
	for _, sub := range s.subs {
		if sub.Canceled() {
			continue
		}

		if !sub.Persisted() {
			result.Planned = append(result.Planned, planProxyOrders(sub, cycles[sub.ScheduleID], now)...)
			continue
		}

		r, err := s.syncOne(ctx, sub, cycles[sub.ScheduleID], now)
		if err != nil {
			s.logger.Error("failed to sync subscription",
				zap.String("subscription_id", sub.ID.String()),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("subscription[%s]: %w", sub.ID, err))
		}
		result = result.add(r)
	}

	metrics.RecordSync(result.Created, result.Removed)

	return result, errors.Join(errs...)
}

func (s *ProxyOrderSyncer) syncOne(ctx context.Context, sub domain.Subscription, cycles []domain.OrderCycle, now time.Time) (SyncResult, error) {
	var result SyncResult

	existing, err := s.proxyOrders.ListBySubscription(ctx, sub.ID)
	if err != nil {
		return result, fmt.Errorf("proxyOrders.ListBySubscription: %w", err)
	}

	existingByCycle := lo.KeyBy(existing, func(po domain.ProxyOrder) uuid.UUID { return po.OrderCycleID })

	relevant := lo.KeyBy(RelevantOrderCycles(sub, cycles, now), func(oc domain.OrderCycle) uuid.UUID { return oc.ID })

	for _, oc := range cycles {
		if _, ok := relevant[oc.ID]; !ok {
			continue
		}
		if _, ok := existingByCycle[oc.ID]; ok {
			continue
		}

		created, err := s.proxyOrders.InsertProxyOrder(ctx, sub.ID, oc.ID)
		if err != nil {
			return result, fmt.Errorf("proxyOrders.InsertProxyOrder: %w", err)
		}
		if created {
			result.Created++
			s.logger.Debug("proxy order created",
				zap.String("subscription_id", sub.ID.String()),
				zap.String("order_cycle_id", oc.ID.String()))
		}
	}

	known := lo.KeyBy(cycles, func(oc domain.OrderCycle) uuid.UUID { return oc.ID })

	for _, po := range existing {
		if po.Placed() || po.OrderID != nil {
			continue
		}
		if _, ok := relevant[po.OrderCycleID]; ok {
			continue
		}

		closed, err := s.cycleClosed(ctx, known, po.OrderCycleID, now)
		if err != nil {
			return result, err
		}
		if closed {
			continue
		}

		removed, err := s.proxyOrders.DeleteUnplaced(ctx, po.ID)
		if err != nil {
			return result, fmt.Errorf("proxyOrders.DeleteUnplaced: %w", err)
		}
		if removed {
			result.Removed++
			s.logger.Debug("proxy order removed",
				zap.String("subscription_id", sub.ID.String()),
				zap.String("proxy_order_id", po.ID.String()))
		}
	}

	return result, nil
}

func planProxyOrders(sub domain.Subscription, cycles []domain.OrderCycle, now time.Time) []domain.ProxyOrder {
	return lo.Map(RelevantOrderCycles(sub, cycles, now), func(oc domain.OrderCycle, _ int) domain.ProxyOrder {
		return domain.ProxyOrder{SubscriptionID: sub.ID, OrderCycleID: oc.ID}
	})
}

// cycleClosed looks up order cycles that left the schedule.
func (s *ProxyOrderSyncer) cycleClosed(ctx context.Context, known map[uuid.UUID]domain.OrderCycle, orderCycleID uuid.UUID, now time.Time) (bool, error) {
	oc, ok := known[orderCycleID]
	if !ok {
		var err error
		oc, err = s.orderCycles.GetOrderCycle(ctx, orderCycleID)
		if err != nil {
			return false, fmt.Errorf("orderCycles.GetOrderCycle: %w", err)
		}
	}

	return oc.Window.IsClosed(now), nil
}

// SetClock replaces the time source used to decide whether order cycles closed.
func (s *ProxyOrderSyncer) SetClock(now func() time.Time) {
	s.nowFunc = now
}
