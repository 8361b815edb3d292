package fingov

import "strings"

// Priority is the urgency tier assigned to a request. Higher tiers get a
// larger share of the per-call unit cap and longer fallback chains.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// urgentKeywords mark a request as needing a live value right now.
// Shared across categories; profile keywords only feed the High tier.
var urgentKeywords = []string{
	"now", "live", "current", "today", "latest", "real-time", "realtime",
	"intraday", "right now",
}

// Classifier maps request strings to priority tiers. Pure and total:
// every input yields a tier.
type Classifier struct {
	urgent     []string
	domain     []string
	perCallCap int64
}

// NewClassifier creates a classifier whose High-tier vocabulary comes
// from the given profile's domain keywords.
func NewClassifier(profile *Profile, perCallCap int64) *Classifier {
	if perCallCap <= 0 {
		perCallCap = DefaultPerCallCap
	}
	return &Classifier{
		urgent:     urgentKeywords,
		domain:     profile.DomainKeywords,
		perCallCap: perCallCap,
	}
}

// Classify returns the urgency tier for a request string. When several
// tiers' keyword sets match, the highest tier wins. Deterministic:
// repeated calls on the same input always agree.
func (c *Classifier) Classify(query string) Priority {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return PriorityLow
	}

	for _, kw := range c.urgent {
		if strings.Contains(q, kw) {
			return PriorityCritical
		}
	}

	for _, kw := range c.domain {
		if strings.Contains(q, kw) {
			return PriorityHigh
		}
	}

	// A bare recognizable entity name with no qualifiers.
	if looksLikeSymbol(q) {
		return PriorityMedium
	}

	return PriorityLow
}

// RecommendedUnits computes the per-call unit allowance: a priority-tier
// fraction of the per-call cap, clamped so it never exceeds the remaining
// capacity snapshot.
func (c *Classifier) RecommendedUnits(query string, p Priority, remaining int64) int64 {
	var units int64
	switch p {
	case PriorityCritical:
		units = c.perCallCap
	case PriorityHigh:
		units = c.perCallCap * 75 / 100
	case PriorityMedium:
		units = c.perCallCap * 50 / 100
	default:
		units = c.perCallCap * 25 / 100
	}

	if remaining < 0 {
		remaining = 0
	}
	if units > remaining {
		units = remaining
	}
	return units
}

// looksLikeSymbol reports whether the query could be a ticker symbol or a
// single entity name: one token, alphanumeric plus exchange-suffix dots,
// with at least one letter.
func looksLikeSymbol(q string) bool {
	if len(q) == 0 || len(q) > 15 || strings.ContainsAny(q, " \t") {
		return false
	}

	hasLetter := false
	for _, r := range q {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9' || r == '.' || r == '-':
		default:
			return false
		}
	}
	return hasLetter
}
