package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Journal metrics
	EntriesAppended prometheus.Counter
	EntriesReverted prometheus.Counter
	RevertConflicts prometheus.Counter
	MalformedBlocks prometheus.Counter

	// Engine metrics
	EngineCalls    *prometheus.CounterVec
	EngineDuration *prometheus.HistogramVec
	EngineErrors   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EntriesAppended: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerd_entries_appended_total",
			Help: "Total number of entries appended to the journal",
		}),
		EntriesReverted: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerd_entries_reverted_total",
			Help: "Total number of appends reverted",
		}),
		RevertConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerd_revert_conflicts_total",
			Help: "Total number of reverts refused because the file changed underneath",
		}),
		MalformedBlocks: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerd_malformed_blocks_total",
			Help: "Total number of malformed journal blocks skipped during iteration",
		}),

		EngineCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerd_engine_calls_total",
				Help: "Total ledger engine invocations by subcommand",
			},
			[]string{"subcommand"},
		),
		EngineDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgerd_engine_duration_seconds",
				Help:    "Ledger engine invocation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"subcommand"},
		),
		EngineErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerd_engine_errors_total",
				Help: "Total ledger engine failures by subcommand",
			},
			[]string{"subcommand"},
		),
	}
}
