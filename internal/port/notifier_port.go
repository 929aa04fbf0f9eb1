package port

import (
	"context"

	"github.com/nikolayk812/subsync/internal/domain"
)

type SummaryNotifier interface {
	Notify(ctx context.Context, kind domain.SummaryKind, summary domain.ShopSummary) error
}
