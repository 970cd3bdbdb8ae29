package journal

import (
	"context"
	"time"

	"github.com/iho/ledgerd/internal/infrastructure/metrics"
)

type instrumentedEngine struct {
	engine  Engine
	metrics *metrics.Metrics
}

// InstrumentEngine wraps an engine so every invocation is counted and
// timed per subcommand.
func InstrumentEngine(engine Engine, m *metrics.Metrics) Engine {
	return &instrumentedEngine{engine: engine, metrics: m}
}

func (e *instrumentedEngine) Run(ctx context.Context, subcommand string, args ...string) (string, error) {
	start := time.Now()
	out, err := e.engine.Run(ctx, subcommand, args...)

	e.metrics.EngineCalls.WithLabelValues(subcommand).Inc()
	e.metrics.EngineDuration.WithLabelValues(subcommand).Observe(time.Since(start).Seconds())
	if err != nil {
		e.metrics.EngineErrors.WithLabelValues(subcommand).Inc()
	}

	return out, err
}
