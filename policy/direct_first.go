package policy

import "github.com/veldt-io/fingov"

// DirectFirstPolicy tries known-good direct locators before constructed
// search queries. The right choice when the request needs a specific
// current value and the symbol is well known.
type DirectFirstPolicy struct{}

var _ fingov.Policy = (*DirectFirstPolicy)(nil)

// Order puts direct candidates first, preserving relative order within
// each group.
func (p *DirectFirstPolicy) Order(candidates []fingov.SourceCandidate) []fingov.SourceCandidate {
	result := make([]fingov.SourceCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Kind == fingov.SourceDirect {
			result = append(result, c)
		}
	}
	for _, c := range candidates {
		if c.Kind != fingov.SourceDirect {
			result = append(result, c)
		}
	}
	return result
}
