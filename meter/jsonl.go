package meter

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/veldt-io/fingov"
)

// FileMeter appends one JSON line per event to a log file. The file is
// the append-only call-metrics log consumed by offline reporting; the
// governor never reads it back.
type FileMeter struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

var _ fingov.Meter = (*FileMeter)(nil)

// fileRecord is the on-disk line format shared by both event kinds.
type fileRecord struct {
	Time        time.Time `json:"time"`
	Type        string    `json:"type"` // "fetch" or "emission"
	ExecutionID string    `json:"execution_id"`
	Query       string    `json:"query"`
	Category    string    `json:"category"`
	Source      string    `json:"source,omitempty"`

	Attempt    int    `json:"attempt,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Rejected   bool   `json:"rejected,omitempty"`
	Priority   string `json:"priority,omitempty"`
	Decision   string `json:"decision,omitempty"`
	Units      int64  `json:"units,omitempty"`
	Remaining  int64  `json:"remaining,omitempty"`
	FromCache  bool   `json:"from_cache,omitempty"`
	Success    *bool  `json:"success,omitempty"`
	Error      string `json:"error,omitempty"`
}

// NewFileMeter opens (or creates) the log file in append mode.
func NewFileMeter(path string) (*FileMeter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("meter: open log file: %w", err)
	}
	return &FileMeter{f: f, enc: json.NewEncoder(f)}, nil
}

// Close flushes and closes the underlying file.
func (m *FileMeter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.f.Close()
}

func (m *FileMeter) OnFetch(e fingov.FetchEvent) {
	rec := fileRecord{
		Time:        time.Now().UTC(),
		Type:        "fetch",
		ExecutionID: e.ExecutionID,
		Query:       e.Query,
		Category:    e.Category,
		Source:      e.Source,
		Attempt:     e.Attempt,
		DurationMS:  e.Duration.Milliseconds(),
		Rejected:    e.Rejected,
	}
	if e.Err != nil {
		rec.Error = e.Err.Error()
	}
	m.write(rec)
}

func (m *FileMeter) OnEmission(e fingov.EmissionEvent) {
	success := e.Success
	rec := fileRecord{
		Time:        time.Now().UTC(),
		Type:        "emission",
		ExecutionID: e.ExecutionID,
		Query:       e.Query,
		Category:    e.Category,
		Source:      e.Source,
		Priority:    e.Priority.String(),
		Decision:    e.Decision.String(),
		Units:       e.EstimatedUnits,
		Remaining:   e.Remaining,
		FromCache:   e.FromCache,
		Success:     &success,
	}
	if e.Err != nil {
		rec.Error = e.Err.Error()
	}
	m.write(rec)
}

func (m *FileMeter) write(rec fileRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Best effort: a metrics write failure must never fail the call.
	_ = m.enc.Encode(rec)
}
