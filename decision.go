package fingov

// Decision is the degradation level chosen for a governed call, ordered
// roughly from least information (Skip) to most (Filtered). Empty,
// ErrorEcho and Skip are terminal short-circuits that bypass rendering
// cost; the rest select a renderer strategy.
type Decision int

const (
	DecisionEmpty Decision = iota
	DecisionErrorEcho
	DecisionSkip
	DecisionEmergency
	DecisionKeyMetrics
	DecisionSummary
	DecisionMinimal
	DecisionFiltered
)

func (d Decision) String() string {
	switch d {
	case DecisionEmpty:
		return "empty"
	case DecisionErrorEcho:
		return "error_echo"
	case DecisionSkip:
		return "skip"
	case DecisionEmergency:
		return "emergency"
	case DecisionKeyMetrics:
		return "key_metrics"
	case DecisionSummary:
		return "summary"
	case DecisionMinimal:
		return "minimal"
	case DecisionFiltered:
		return "filtered"
	default:
		return "unknown"
	}
}

// Terminal reports whether the decision is a zero-cost short-circuit
// that is never charged against the ledger.
func (d Decision) Terminal() bool {
	return d == DecisionEmpty || d == DecisionErrorEcho || d == DecisionSkip
}

// Engine picks a degradation level from a quality assessment and a
// remaining-capacity snapshot. Deterministic given its inputs; each call
// runs the rule table fresh, there is no retained state.
type Engine struct {
	emergencyFloor int64
	lowFloor       int64
	maxContentLen  int
}

// NewEngine creates a decision engine from the governor configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		emergencyFloor: cfg.EmergencyFloor,
		lowFloor:       cfg.LowFloor,
		maxContentLen:  cfg.MaxContentLen,
	}
}

// Decide applies the degradation rule table, first match wins.
func (e *Engine) Decide(req Request, content string, qa QualityAssessment, remaining int64) Decision {
	if isBlank(req.Query) || isBlank(content) {
		return DecisionEmpty
	}

	if remaining < e.emergencyFloor {
		if !qa.HasDomainSignal {
			return DecisionSkip
		}
		return DecisionEmergency
	}

	if remaining < e.lowFloor {
		if qa.IsErrorPage {
			return DecisionSkip
		}
		return DecisionKeyMetrics
	}

	if qa.IsErrorPage {
		return DecisionSkip
	}

	switch {
	case qa.Score <= 30:
		return DecisionSkip
	case len(content) > e.maxContentLen:
		// Oversized payloads get summarized regardless of score.
		return DecisionSummary
	case qa.Score <= 50:
		return DecisionEmergency
	case qa.Score <= 70:
		if req.Region != "" {
			return DecisionMinimal
		}
		return DecisionKeyMetrics
	case qa.Score <= 85:
		return DecisionSummary
	default:
		return DecisionFiltered
	}
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
