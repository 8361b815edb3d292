package fingov

import "sync"

// Ledger is the process-wide output budget: one shared counter of
// consumed units against a fixed capacity. It is the only cross-call
// mutable state in the governor.
//
// The budget is a soft cap. Remaining() and Commit() are separate
// operations separated by fetch and render time, so concurrent calls can
// read the same remaining snapshot and both commit, overshooting the
// capacity. Commit never rejects; enforcement is advisory at decision
// time, where a shrinking snapshot pushes later calls into cheaper
// degradation levels.
type Ledger struct {
	mu        sync.Mutex
	capacity  int64
	consumed  int64
	callsSeen int64
}

// NewLedger creates a ledger with the given capacity. Non-positive
// capacities fall back to the default.
func NewLedger(capacity int64) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ledger{capacity: capacity}
}

// Remaining returns a snapshot of (consumed, remaining). Remaining is
// clamped at zero after an overshoot.
func (l *Ledger) Remaining() (consumed, remaining int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining = l.capacity - l.consumed
	if remaining < 0 {
		remaining = 0
	}
	return l.consumed, remaining
}

// Fits reports whether a charge of the given size would stay within
// capacity. Advisory only: the answer can be stale by the time the
// caller commits.
func (l *Ledger) Fits(units int64) bool {
	_, remaining := l.Remaining()
	return units <= remaining
}

// Commit adds units to the consumed counter and counts the call. It
// never fails, even when the charge pushes consumption past capacity.
func (l *Ledger) Commit(units int64) {
	if units < 0 {
		units = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.consumed += units
	l.callsSeen++
}

// Reset zeroes the counters. Invoked only on an explicit session-start
// signal from outside the governor.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.consumed = 0
	l.callsSeen = 0
}

// Capacity returns the fixed ceiling.
func (l *Ledger) Capacity() int64 { return l.capacity }

// CallsSeen returns how many calls have committed since the last reset.
func (l *Ledger) CallsSeen() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.callsSeen
}
