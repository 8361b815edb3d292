package fingov

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrNoSources      = errors.New("fingov: no candidate sources for request")
	ErrChainExhausted = errors.New("fingov: all candidate sources failed or were rejected")
	ErrLowQuality     = errors.New("fingov: content rejected by quality gate")
	ErrNoProfile      = errors.New("fingov: no profile for category")
)

// ChainError wraps the last candidate's failure after the fallback chain
// is exhausted. It is the only error a governed call propagates; empty
// input and degraded content resolve into a Decision instead.
type ChainError struct {
	Err      error // last candidate's error
	Query    string
	Category string
	Source   string // label of the last candidate tried
	Attempts int
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("fingov: query=%q category=%s last_source=%s attempts=%d: %v",
		e.Query, e.Category, e.Source, e.Attempts, e.Err)
}

func (e *ChainError) Unwrap() error {
	return e.Err
}
