package meter

import (
	"log/slog"

	"github.com/veldt-io/fingov"
)

// LogMeter logs governed-call events using slog.
type LogMeter struct {
	Logger *slog.Logger
}

var _ fingov.Meter = (*LogMeter)(nil)

// NewLogMeter creates a LogMeter with the given logger.
// If logger is nil, slog.Default() is used.
func NewLogMeter(logger *slog.Logger) *LogMeter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMeter{Logger: logger}
}

func (m *LogMeter) OnFetch(e fingov.FetchEvent) {
	if e.Err != nil {
		m.Logger.Warn("fetch_error",
			"execution_id", e.ExecutionID,
			"query", e.Query,
			"category", e.Category,
			"source", e.Source,
			"attempt", e.Attempt,
			"duration_ms", e.Duration.Milliseconds(),
			"error", e.Err,
		)
		return
	}
	m.Logger.Info("fetch",
		"execution_id", e.ExecutionID,
		"query", e.Query,
		"category", e.Category,
		"source", e.Source,
		"kind", e.Kind.String(),
		"attempt", e.Attempt,
		"duration_ms", e.Duration.Milliseconds(),
		"rejected", e.Rejected,
	)
}

func (m *LogMeter) OnEmission(e fingov.EmissionEvent) {
	if e.Success {
		m.Logger.Info("emission",
			"execution_id", e.ExecutionID,
			"query", e.Query,
			"category", e.Category,
			"priority", e.Priority.String(),
			"decision", e.Decision.String(),
			"source", e.Source,
			"units", e.EstimatedUnits,
			"remaining", e.Remaining,
			"from_cache", e.FromCache,
		)
	} else {
		m.Logger.Warn("emission_error",
			"execution_id", e.ExecutionID,
			"query", e.Query,
			"category", e.Category,
			"decision", e.Decision.String(),
			"error", e.Err,
		)
	}
}
