package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

var (
	ProxyOrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subsync_proxy_orders_created_total",
			Help: "Total number of proxy orders created by the syncer",
		},
	)

	ProxyOrdersRemovedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subsync_proxy_orders_removed_total",
			Help: "Total number of unplaced proxy orders removed by the syncer",
		},
	)

	OrdersPlacedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subsync_orders_placed_total",
			Help: "Total number of proxy orders processed by the placement job",
		},
		[]string{"result"},
	)

	OrdersConfirmedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subsync_orders_confirmed_total",
			Help: "Total number of proxy orders processed by the confirmation job",
		},
		[]string{"result"},
	)

	SummariesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subsync_summaries_sent_total",
			Help: "Total number of shop summaries queued for delivery",
		},
		[]string{"kind", "status"},
	)
)

func RecordSync(created, removed int) {
	ProxyOrdersCreatedTotal.Add(float64(created))
	ProxyOrdersRemovedTotal.Add(float64(removed))
}

func RecordPlacement(result string) {
	OrdersPlacedTotal.WithLabelValues(result).Inc()
}

func RecordConfirmation(result string) {
	OrdersConfirmedTotal.WithLabelValues(result).Inc()
}

func RecordSummarySent(kind, status string) {
	SummariesSentTotal.WithLabelValues(kind, status).Inc()
}
