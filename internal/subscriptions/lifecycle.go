package subscriptions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/logger"
	"github.com/nikolayk812/subsync/internal/port"
	"go.uber.org/zap"
)

// Lifecycle pauses, resumes and cancels subscriptions.
type Lifecycle struct {
	uow     port.UnitOfWork
	logger  *zap.Logger
	nowFunc func() time.Time
}

func NewLifecycle(uow port.UnitOfWork, log *zap.Logger) *Lifecycle {
	return &Lifecycle{
		uow:     uow,
		logger:  logger.OrNop(log),
		nowFunc: time.Now,
	}
}

// Pause is a no-op for a paused subscription.
func (l *Lifecycle) Pause(ctx context.Context, subscriptionID uuid.UUID) error {
	if err := l.uow.Do(ctx, func(repos port.Repositories) error {
		sub, err := repos.Subscriptions.GetSubscription(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("repos.Subscriptions.GetSubscription: %w", err)
		}

		now := l.nowFunc()

		switch sub.State(now) {
		case domain.SubscriptionCanceled:
			return ErrSubscriptionCanceled
		case domain.SubscriptionPaused:
			return nil
		}

		if err := repos.Subscriptions.SetPausedAt(ctx, subscriptionID, &now); err != nil {
			return fmt.Errorf("repos.Subscriptions.SetPausedAt: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("uow.Do: %w", err)
	}

	return nil
}

func (l *Lifecycle) Unpause(ctx context.Context, subscriptionID uuid.UUID) error {
	if err := l.uow.Do(ctx, func(repos port.Repositories) error {
		sub, err := repos.Subscriptions.GetSubscription(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("repos.Subscriptions.GetSubscription: %w", err)
		}

		state := sub.State(l.nowFunc())
		if state == domain.SubscriptionCanceled {
			return ErrSubscriptionCanceled
		}
		if state != domain.SubscriptionPaused {
			return nil
		}

		if err := repos.Subscriptions.SetPausedAt(ctx, subscriptionID, nil); err != nil {
			return fmt.Errorf("repos.Subscriptions.SetPausedAt: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("uow.Do: %w", err)
	}

	return nil
}

// Cancel marks the subscription canceled along with its unplaced proxy orders
// in order cycles that have not closed. It returns the number of proxy orders canceled.
func (l *Lifecycle) Cancel(ctx context.Context, subscriptionID uuid.UUID) (int64, error) {
	var canceled int64

	err := l.uow.Do(ctx, func(repos port.Repositories) error {
		sub, err := repos.Subscriptions.GetSubscription(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("repos.Subscriptions.GetSubscription: %w", err)
		}

		if sub.Canceled() {
			return ErrSubscriptionCanceled
		}

		now := l.nowFunc()
		if err := repos.Subscriptions.SetCanceledAt(ctx, subscriptionID, now); err != nil {
			return fmt.Errorf("repos.Subscriptions.SetCanceledAt: %w", err)
		}

		canceled, err = repos.ProxyOrders.CancelUnplaced(ctx, subscriptionID, now)
		if err != nil {
			return fmt.Errorf("repos.ProxyOrders.CancelUnplaced: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("uow.Do: %w", err)
	}

	l.logger.Info("subscription canceled",
		zap.String("subscription_id", subscriptionID.String()),
		zap.Int64("proxy_orders_canceled", canceled))

	return canceled, nil
}
