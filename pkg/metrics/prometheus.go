package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics. Methods are nil-safe so tests
// can pass a nil *Metrics and skip registration entirely.
type Metrics struct {
	UpdateCycles        prometheus.Counter
	DirectionsRefreshed prometheus.Counter
	SourceErrors        prometheus.Counter
	NotificationsSent   prometheus.Counter
	NotificationErrors  prometheus.Counter
	OutdatedRemoved     prometheus.Counter
	UpdateCycleTime     prometheus.Histogram
}

// NewMetrics creates and registers prometheus metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		UpdateCycles: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "update_cycles_total",
			Help:      "The total number of direction update cycles",
		}),
		DirectionsRefreshed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "directions_refreshed_total",
			Help:      "The total number of directions refreshed from the ticket source",
		}),
		SourceErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_source_errors_total",
			Help:      "The total number of failed ticket source requests",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of price notifications delivered",
		}),
		NotificationErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_errors_total",
			Help:      "The total number of failed notification deliveries",
		}),
		OutdatedRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outdated_directions_removed_total",
			Help:      "The total number of directions removed by the outdated sweep",
		}),
		UpdateCycleTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "update_cycle_time_seconds",
			Help:      "Time taken by a single update cycle",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncUpdateCycles() {
	if m != nil {
		m.UpdateCycles.Inc()
	}
}

func (m *Metrics) IncDirectionsRefreshed() {
	if m != nil {
		m.DirectionsRefreshed.Inc()
	}
}

func (m *Metrics) IncSourceErrors() {
	if m != nil {
		m.SourceErrors.Inc()
	}
}

func (m *Metrics) IncNotificationsSent() {
	if m != nil {
		m.NotificationsSent.Inc()
	}
}

func (m *Metrics) IncNotificationErrors() {
	if m != nil {
		m.NotificationErrors.Inc()
	}
}

func (m *Metrics) AddOutdatedRemoved(n int) {
	if m != nil {
		m.OutdatedRemoved.Add(float64(n))
	}
}

func (m *Metrics) ObserveUpdateCycleTime(seconds float64) {
	if m != nil {
		m.UpdateCycleTime.Observe(seconds)
	}
}
