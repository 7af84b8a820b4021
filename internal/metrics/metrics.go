package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the application.
// It includes counters for bot traffic and computed statistics and
// histograms for storage and report durations.
type Metrics struct {
	CommandReceived  *prometheus.CounterVec   // Counter for received commands
	SentMessages     *prometheus.CounterVec   // Counter for sent messages
	StorageDuration  *prometheus.HistogramVec // Histogram for storage call durations
	StatsComputed    *prometheus.CounterVec   // Counter for computed stats windows
	ReportGeneration prometheus.Histogram     // Histogram for excel export durations
}

// NewMetrics creates a new Metrics instance with the provided Prometheus Registerer.
//
// Parameters:
//   - reg: A Prometheus Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CommandReceived: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tally_commands_received_total",
			Help: "Total number of used commands",
		}, []string{"command"}), // command: /start, /work, /stats
		SentMessages: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tally_messages_sent_total",
			Help: "Output bot activity",
		}, []string{"type"}), // type: text, document, error
		StorageDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tally_storage_query_duration_seconds",
			Help:    "Duration of storage calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}), // op: save_work_day, list_employees
		StatsComputed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "tally_stats_computed_total",
			Help: "Total number of computed stats windows",
		}, []string{"window"}), // window: last_15_days, current_month, month
		ReportGeneration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name: "tally_report_generation_duration_seconds",
			Help: "Duration of report excel generation.",
		}),
	}
}

// ObserveStorage records the time elapsed since start under op.
// A nil receiver is a no-op so callers may run without metrics.
func (m *Metrics) ObserveStorage(op string, start time.Time) {
	if m == nil {
		return
	}
	m.StorageDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// CountStats increments the computed stats counter for window.
func (m *Metrics) CountStats(window string) {
	if m == nil {
		return
	}
	m.StatsComputed.WithLabelValues(window).Inc()
}
