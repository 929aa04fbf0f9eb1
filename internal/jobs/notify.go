package jobs

import (
	"context"

	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/nikolayk812/subsync/internal/metrics"
	"github.com/nikolayk812/subsync/internal/port"
	"go.uber.org/zap"
)

// sendSummaries notifies one summary per shop. Delivery failures are logged
// and counted, they do not fail the run.
func sendSummaries(ctx context.Context, notifier port.SummaryNotifier, kind domain.SummaryKind, summarizer *Summarizer, log *zap.Logger) int {
	if notifier == nil {
		return 0
	}

	var sent int
	for _, summary := range summarizer.Summaries() {
		if err := notifier.Notify(ctx, kind, summary); err != nil {
			log.Error("failed to send summary",
				zap.String("kind", string(kind)),
				zap.String("shop_id", summary.ShopID.String()),
				zap.Error(err))
			metrics.RecordSummarySent(string(kind), "error")
			continue
		}

		metrics.RecordSummarySent(string(kind), "sent")
		sent++
	}

	return sent
}
