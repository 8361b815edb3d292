package policy

import "github.com/veldt-io/fingov"

// SearchFirstPolicy tries constructed search queries before direct
// locators. Useful for ambiguous entity names where a guessed symbol URL
// is likely to land on the wrong instrument.
type SearchFirstPolicy struct{}

var _ fingov.Policy = (*SearchFirstPolicy)(nil)

// Order puts search candidates first, preserving relative order within
// each group.
func (p *SearchFirstPolicy) Order(candidates []fingov.SourceCandidate) []fingov.SourceCandidate {
	result := make([]fingov.SourceCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Kind == fingov.SourceSearchQuery {
			result = append(result, c)
		}
	}
	for _, c := range candidates {
		if c.Kind != fingov.SourceSearchQuery {
			result = append(result, c)
		}
	}
	return result
}
