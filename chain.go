package fingov

import "strings"

// SourceKind distinguishes known-good locators from constructed search
// queries.
type SourceKind int

const (
	SourceDirect SourceKind = iota
	SourceSearchQuery
)

func (k SourceKind) String() string {
	switch k {
	case SourceDirect:
		return "direct"
	case SourceSearchQuery:
		return "search"
	default:
		return "unknown"
	}
}

// SourceCandidate is one alternate content source in a fallback chain.
type SourceCandidate struct {
	Kind    SourceKind
	Locator string
	Label   string
}

// FallbackChain is the ordered, priority-capped list of candidates tried
// in sequence until one yields an acceptable sample. Built fresh per
// call, discarded after use.
type FallbackChain []SourceCandidate

// currentValueKeywords imply the caller needs a specific live number, in
// which case known-good direct sources beat search.
var currentValueKeywords = []string{
	"price", "quote", "rate", "value", "now", "today", "current", "live",
}

// BuildChain assembles the fallback chain for a request: direct and
// search candidates from the profile, ordered by the policy, capped by
// priority. A nil policy selects direct-first when the query implies a
// current value and search-first otherwise.
func BuildChain(req Request, profile *Profile, priority Priority, pol Policy) FallbackChain {
	candidates := append(profile.Directs(req.Query, req.Region), profile.Searches(req.Query, priority)...)
	if len(candidates) == 0 {
		return nil
	}

	if pol == nil {
		if wantsCurrentValue(req.Query) {
			pol = directFirstPolicy{}
		} else {
			pol = searchFirstPolicy{}
		}
	}
	ordered := pol.Order(candidates)

	if limit := chainCap(priority); limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// chainCap returns the maximum chain length for a priority tier; zero
// means unbounded.
func chainCap(p Priority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

func wantsCurrentValue(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range currentValueKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// directFirstPolicy is the inline default ordering to avoid an import
// cycle with the policy package.
type directFirstPolicy struct{}

func (directFirstPolicy) Order(candidates []SourceCandidate) []SourceCandidate {
	return partitionByKind(candidates, SourceDirect)
}

type searchFirstPolicy struct{}

func (searchFirstPolicy) Order(candidates []SourceCandidate) []SourceCandidate {
	return partitionByKind(candidates, SourceSearchQuery)
}

// partitionByKind is a stable partition: candidates of the preferred
// kind first, relative order preserved within each group.
func partitionByKind(candidates []SourceCandidate, first SourceKind) []SourceCandidate {
	var lead, tail []SourceCandidate
	for _, c := range candidates {
		if c.Kind == first {
			lead = append(lead, c)
		} else {
			tail = append(tail, c)
		}
	}
	return append(lead, tail...)
}
