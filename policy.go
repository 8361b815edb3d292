package fingov

// Policy orders the candidates of a fallback chain. Returns the ordered
// slice, best candidate first. The chain builder applies the priority
// cap after ordering.
type Policy interface {
	Order(candidates []SourceCandidate) []SourceCandidate
}
