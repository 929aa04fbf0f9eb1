package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/subsync/internal/logger"
	"github.com/nikolayk812/subsync/internal/port"
	"github.com/nikolayk812/subsync/internal/subscriptions"
	"go.uber.org/zap"
)

// SyncJob syncs proxy orders of every subscription that is neither canceled nor ended.
type SyncJob struct {
	subs        port.SubscriptionRepository
	orderCycles port.OrderCycleRepository
	proxyOrders port.ProxyOrderRepository
	logger      *zap.Logger
	nowFunc     func() time.Time
}

func NewSyncJob(repos port.Repositories, log *zap.Logger) (*SyncJob, error) {
	if repos.Subscriptions == nil || repos.OrderCycles == nil || repos.ProxyOrders == nil {
		return nil, errors.New("repositories must not be nil")
	}

	return &SyncJob{
		subs:        repos.Subscriptions,
		orderCycles: repos.OrderCycles,
		proxyOrders: repos.ProxyOrders,
		logger:      logger.OrNop(log),
		nowFunc:     time.Now,
	}, nil
}

func (j *SyncJob) Run(ctx context.Context) (subscriptions.SyncResult, error) {
	subs, err := j.subs.ListSyncable(ctx, j.nowFunc())
	if err != nil {
		return subscriptions.SyncResult{}, fmt.Errorf("subs.ListSyncable: %w", err)
	}

	syncer, err := subscriptions.NewProxyOrderSyncer(subscriptions.Batch(subs), j.orderCycles, j.proxyOrders, j.logger)
	if err != nil {
		return subscriptions.SyncResult{}, fmt.Errorf("subscriptions.NewProxyOrderSyncer: %w", err)
	}

	syncer.SetClock(j.nowFunc)

	result, err := syncer.Sync(ctx)

	j.logger.Info("sync finished",
		zap.Int("subscriptions", len(subs)),
		zap.Int("created", result.Created),
		zap.Int("removed", result.Removed),
		zap.Error(err))

	if err != nil {
		return result, fmt.Errorf("syncer.Sync: %w", err)
	}

	return result, nil
}
