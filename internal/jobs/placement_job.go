package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/logger"
	"github.com/nikolayk812/subsync/internal/metrics"
	"github.com/nikolayk812/subsync/internal/port"
	"go.uber.org/zap"
)

// PlacementJob turns proxy orders of open order cycles into completed orders.
type PlacementJob struct {
	subs        port.SubscriptionRepository
	orderCycles port.OrderCycleRepository
	proxyOrders port.ProxyOrderRepository
	pipeline    Pipeline
	notifier    port.SummaryNotifier
	logger      *zap.Logger
	nowFunc     func() time.Time
}

// NewPlacementJob expects repositories that do not share a transaction, so
// each proxy order is placed and retried independently. notifier may be nil.
func NewPlacementJob(repos port.Repositories, notifier port.SummaryNotifier, log *zap.Logger) (*PlacementJob, error) {
	if repos.Subscriptions == nil || repos.ProxyOrders == nil || repos.OrderCycles == nil {
		return nil, errors.New("repositories must not be nil")
	}

	steps, finally, err := buildPlacementSteps(repos)
	if err != nil {
		return nil, fmt.Errorf("buildPlacementSteps: %w", err)
	}

	pipeline, err := NewPipeline(steps...)
	if err != nil {
		return nil, fmt.Errorf("NewPipeline: %w", err)
	}

	pipeline, err = pipeline.WithFinally(finally...)
	if err != nil {
		return nil, fmt.Errorf("pipeline.WithFinally: %w", err)
	}

	return &PlacementJob{
		subs:        repos.Subscriptions,
		orderCycles: repos.OrderCycles,
		proxyOrders: repos.ProxyOrders,
		pipeline:    pipeline,
		notifier:    notifier,
		logger:      logger.OrNop(log),
		nowFunc:     time.Now,
	}, nil
}

// Run places every placeable proxy order. A failing proxy order is recorded
// in the returned summarizer and does not stop the others.
func (j *PlacementJob) Run(ctx context.Context) (*Summarizer, error) {
	now := j.nowFunc()

	proxyOrders, err := j.proxyOrders.ListPlaceable(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("proxyOrders.ListPlaceable: %w", err)
	}

	summarizer := NewSummarizer()
	for _, po := range proxyOrders {
		if err := ctx.Err(); err != nil {
			return summarizer, err
		}

		j.place(ctx, po, now, summarizer)
	}

	sent := sendSummaries(ctx, j.notifier, domain.SummaryPlacement, summarizer, j.logger)

	j.logger.Info("placement finished",
		zap.Int("proxy_orders", len(proxyOrders)),
		zap.Int("summaries_sent", sent))

	return summarizer, nil
}

func (j *PlacementJob) place(ctx context.Context, po domain.ProxyOrder, now time.Time, summarizer *Summarizer) {
	log := j.logger.With(
		zap.String("proxy_order_id", po.ID.String()),
		zap.String("subscription_id", po.SubscriptionID.String()))

	sub, err := j.subs.GetSubscription(ctx, po.SubscriptionID)
	if err != nil {
		log.Error("failed to load subscription", zap.Error(err))
		metrics.RecordPlacement(metrics.ResultFailure)

		oc, ocErr := j.orderCycles.GetOrderCycle(ctx, po.OrderCycleID)
		if ocErr != nil {
			log.Error("failed to load order cycle", zap.Error(ocErr))
			return
		}
		recordFailure(summarizer, oc.CoordinatorID, po, fmt.Errorf("subs.GetSubscription: %w", err))
		return
	}

	summarizer.RecordOrder(sub.ShopID)

	p := &placement{proxyOrder: po, subscription: sub, now: now}

	issue := domain.SummaryIssue{SubscriptionID: sub.ID, ProxyOrderID: po.ID}

	if err := j.pipeline.Run(ctx, p); err != nil {
		log.Error("failed to place order",
			zap.String("shop_id", sub.ShopID.String()),
			zap.Error(err))

		issue.Kind = domain.SummaryIssueFailure
		issue.OrderID = p.proxyOrder.OrderID
		issue.Message = err.Error()
		summarizer.RecordIssue(sub.ShopID, issue)
		metrics.RecordPlacement(metrics.ResultFailure)
		return
	}

	issue.OrderID = p.proxyOrder.OrderID

	if p.outcome != "" {
		issue.Kind = p.outcome
		summarizer.RecordIssue(sub.ShopID, issue)
		metrics.RecordPlacement(metrics.ResultSkipped)
		return
	}

	summarizer.RecordSuccess(sub.ShopID)
	metrics.RecordPlacement(metrics.ResultSuccess)

	if len(p.dropped) > 0 {
		issue.Kind = domain.SummaryIssueChanges
		issue.Message = fmt.Sprintf("%d line items unavailable", len(p.dropped))
		summarizer.RecordIssue(sub.ShopID, issue)
	}

	log.Debug("order placed", zap.String("order_id", p.order.ID.String()))
}
