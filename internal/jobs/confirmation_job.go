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

// ConfirmationJob confirms placed orders once their order cycle has closed.
type ConfirmationJob struct {
	subs        port.SubscriptionRepository
	orderCycles port.OrderCycleRepository
	proxyOrders port.ProxyOrderRepository
	orders      port.OrderRepository
	notifier    port.SummaryNotifier
	lookback    time.Duration
	logger      *zap.Logger
	nowFunc     func() time.Time
}

func NewConfirmationJob(repos port.Repositories, notifier port.SummaryNotifier, lookback time.Duration, log *zap.Logger) (*ConfirmationJob, error) {
	if repos.Subscriptions == nil || repos.ProxyOrders == nil || repos.Orders == nil || repos.OrderCycles == nil {
		return nil, errors.New("repositories must not be nil")
	}

	if lookback <= 0 {
		return nil, fmt.Errorf("lookback must be positive: %s", lookback)
	}

	return &ConfirmationJob{
		subs:        repos.Subscriptions,
		orderCycles: repos.OrderCycles,
		proxyOrders: repos.ProxyOrders,
		orders:      repos.Orders,
		notifier:    notifier,
		lookback:    lookback,
		logger:      logger.OrNop(log),
		nowFunc:     time.Now,
	}, nil
}

// Run confirms proxy orders whose order cycle closed in [now - lookback, now).
func (j *ConfirmationJob) Run(ctx context.Context) (*Summarizer, error) {
	now := j.nowFunc()

	closed := domain.TimeRange{From: now.Add(-j.lookback), To: now}

	proxyOrders, err := j.proxyOrders.ListConfirmable(ctx, closed)
	if err != nil {
		return nil, fmt.Errorf("proxyOrders.ListConfirmable: %w", err)
	}

	summarizer := NewSummarizer()
	for _, po := range proxyOrders {
		if err := ctx.Err(); err != nil {
			return summarizer, err
		}

		j.confirm(ctx, po, closed, summarizer)
	}

	sent := sendSummaries(ctx, j.notifier, domain.SummaryConfirmation, summarizer, j.logger)

	j.logger.Info("confirmation finished",
		zap.Int("proxy_orders", len(proxyOrders)),
		zap.Int("summaries_sent", sent))

	return summarizer, nil
}

func (j *ConfirmationJob) confirm(ctx context.Context, po domain.ProxyOrder, closed domain.TimeRange, summarizer *Summarizer) {
	log := j.logger.With(
		zap.String("proxy_order_id", po.ID.String()),
		zap.String("subscription_id", po.SubscriptionID.String()))

	oc, err := j.orderCycles.GetOrderCycle(ctx, po.OrderCycleID)
	if err != nil {
		log.Error("failed to load order cycle", zap.Error(err))
		metrics.RecordConfirmation(metrics.ResultFailure)
		return
	}

	// the order cycle may have been reopened since it was listed
	if !oc.Window.ClosesWithin(closed.From, closed.To) {
		log.Debug("order cycle no longer closed", zap.String("order_cycle_id", oc.ID.String()))
		metrics.RecordConfirmation(metrics.ResultSkipped)
		return
	}

	sub, err := j.subs.GetSubscription(ctx, po.SubscriptionID)
	if err != nil {
		log.Error("failed to load subscription", zap.Error(err))
		metrics.RecordConfirmation(metrics.ResultFailure)
		recordFailure(summarizer, oc.CoordinatorID, po, fmt.Errorf("subs.GetSubscription: %w", err))
		return
	}

	summarizer.RecordOrder(sub.ShopID)

	issue := domain.SummaryIssue{SubscriptionID: sub.ID, ProxyOrderID: po.ID, OrderID: po.OrderID}

	fail := func(err error) {
		log.Error("failed to confirm order", zap.String("shop_id", sub.ShopID.String()), zap.Error(err))

		issue.Kind = domain.SummaryIssueFailure
		issue.Message = err.Error()
		summarizer.RecordIssue(sub.ShopID, issue)
		metrics.RecordConfirmation(metrics.ResultFailure)
	}

	if po.OrderID == nil {
		fail(errors.New("proxy order has no order"))
		return
	}

	order, err := j.orders.GetOrder(ctx, *po.OrderID)
	if err != nil {
		fail(fmt.Errorf("orders.GetOrder: %w", err))
		return
	}

	if !order.Completed() {
		issue.Kind = domain.SummaryIssueProcessing
		issue.Message = fmt.Sprintf("order is %s", order.State)
		summarizer.RecordIssue(sub.ShopID, issue)
		metrics.RecordConfirmation(metrics.ResultSkipped)
		return
	}

	if err := j.proxyOrders.MarkConfirmed(ctx, po.ID, closed.To); err != nil {
		fail(fmt.Errorf("proxyOrders.MarkConfirmed: %w", err))
		return
	}

	summarizer.RecordSuccess(sub.ShopID)
	metrics.RecordConfirmation(metrics.ResultSuccess)
}
