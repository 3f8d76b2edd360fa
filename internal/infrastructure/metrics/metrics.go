package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/ledgersync/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Run metrics
	SyncRuns         *prometheus.CounterVec
	SyncDuration     prometheus.Histogram
	LastRunTimestamp *prometheus.GaugeVec

	// Activity metrics
	ActivitiesNormalized prometheus.Counter
	ActivitiesImported   prometheus.Counter
	ActivitiesPending    prometheus.Gauge
	TradesSkipped        *prometheus.CounterVec

	// Cash metrics
	CashBalance *prometheus.GaugeVec
	CashUpdates prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers all metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Run metrics
		SyncRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgersync_runs_total",
				Help: "Total number of sync runs by final status",
			},
			[]string{"status"},
		),
		SyncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgersync_run_duration_seconds",
			Help:    "Duration of sync runs",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
		LastRunTimestamp: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ledgersync_last_run_timestamp_seconds",
				Help: "Unix time of the last finished run by status",
			},
			[]string{"status"},
		),

		// Activity metrics
		ActivitiesNormalized: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgersync_activities_normalized_total",
			Help: "Total number of broker trades normalized into activities",
		}),
		ActivitiesImported: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgersync_activities_imported_total",
			Help: "Total number of activities accepted by the ledger",
		}),
		ActivitiesPending: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledgersync_activities_pending",
			Help: "Size of the diff computed by the last run",
		}),
		TradesSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgersync_trades_skipped_total",
				Help: "Total number of broker trades skipped by asset category",
			},
			[]string{"asset_category"},
		),

		// Cash metrics
		CashBalance: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ledgersync_cash_balance",
				Help: "Cash balance last pushed to the ledger account",
			},
			[]string{"account_id"},
		),
		CashUpdates: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgersync_cash_updates_total",
			Help: "Total number of account balance updates",
		}),
	}
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(run *domain.SyncRun) {
	m.SyncRuns.WithLabelValues(string(run.Status)).Inc()
	m.SyncDuration.Observe(run.Duration().Seconds())
	m.LastRunTimestamp.WithLabelValues(string(run.Status)).Set(float64(run.FinishedAt.Unix()))

	m.ActivitiesNormalized.Add(float64(run.Normalized))
	m.ActivitiesImported.Add(float64(run.Imported))
	m.ActivitiesPending.Set(float64(run.Diff))

	for category, n := range run.Skipped {
		m.TradesSkipped.WithLabelValues(string(category)).Add(float64(n))
	}

	if run.CashUpdated {
		m.CashUpdates.Inc()
		m.CashBalance.WithLabelValues(run.AccountID).Set(run.CashBalance.InexactFloat64())
	}
}
