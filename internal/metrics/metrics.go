// Package metrics registers the service's Prometheus collectors. Everything
// is registered once at init via promauto and exported over /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoadsTotal counts completed dataset loads, successful or not.
	LoadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roadscope_dataset_loads_total",
		Help: "Total number of dataset load attempts.",
	})

	// LoadFailures counts dataset loads that aborted with an error.
	LoadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roadscope_dataset_load_failures_total",
		Help: "Total number of dataset load attempts that failed.",
	})

	// LoadDuration records the wall time of the most recent successful load.
	LoadDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roadscope_dataset_load_duration_seconds",
		Help: "Duration of the most recent successful dataset load.",
	})

	// UnifiedRows records the row count of the currently cached table.
	UnifiedRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roadscope_dataset_unified_rows",
		Help: "Unified table rows currently held in memory.",
	})
)
