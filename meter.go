package fingov

import "time"

// Meter observes governed calls for monitoring/logging. The governor
// only writes to it; nothing is ever read back.
type Meter interface {
	// OnFetch is called once per fallback-chain attempt.
	OnFetch(event FetchEvent)

	// OnEmission is called once per governed call with the committed
	// outcome.
	OnEmission(event EmissionEvent)
}

// FetchEvent describes one candidate fetch attempt.
type FetchEvent struct {
	ExecutionID string
	Query       string
	Category    string
	Source      string
	Kind        SourceKind
	Attempt     int
	Duration    time.Duration
	Rejected    bool // quality gate sent the runner to the next candidate
	Err         error
}

// EmissionEvent is the per-call telemetry tuple.
type EmissionEvent struct {
	ExecutionID    string
	Query          string
	Category       string
	Priority       Priority
	Decision       Decision
	Source         string
	EstimatedUnits int64
	Remaining      int64 // ledger snapshot after commit
	FromCache      bool
	Success        bool
	Err            error
}
