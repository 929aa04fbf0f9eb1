package subscriptions

import (
	"time"

	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/samber/lo"
)

// RelevantOrderCycles returns the order cycles a subscription places orders in:
// those closing within [BeginsAt, EndsAt] that have not closed at now. A nil
// EndsAt leaves the window open-ended.
func RelevantOrderCycles(sub domain.Subscription, cycles []domain.OrderCycle, now time.Time) []domain.OrderCycle {
	return lo.Filter(cycles, func(oc domain.OrderCycle, _ int) bool {
		return isRelevant(sub, oc, now)
	})
}

func isRelevant(sub domain.Subscription, oc domain.OrderCycle, now time.Time) bool {
	closesAt := oc.Window.ClosesAt

	if closesAt.Before(sub.BeginsAt) {
		return false
	}

	if sub.EndsAt != nil && closesAt.After(*sub.EndsAt) {
		return false
	}

	return !oc.Window.IsClosed(now)
}
