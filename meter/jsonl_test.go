package meter_test

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldt-io/fingov"
	"github.com/veldt-io/fingov/meter"
)

func TestFileMeter_WritesOneLinePerEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.jsonl")

	m, err := meter.NewFileMeter(path)
	require.NoError(t, err)

	m.OnFetch(fingov.FetchEvent{
		ExecutionID: "exec-1",
		Query:       "TSLA",
		Category:    "stock",
		Source:      "yahoo",
		Attempt:     1,
		Duration:    12 * time.Millisecond,
		Rejected:    true,
	})
	m.OnEmission(fingov.EmissionEvent{
		ExecutionID:    "exec-1",
		Query:          "TSLA",
		Category:       "stock",
		Priority:       fingov.PriorityHigh,
		Decision:       fingov.DecisionKeyMetrics,
		EstimatedUnits: 14,
		Remaining:      4486,
		Success:        true,
	})
	m.OnEmission(fingov.EmissionEvent{
		ExecutionID: "exec-2",
		Query:       "TSLA",
		Category:    "stock",
		Decision:    fingov.DecisionErrorEcho,
		Err:         errors.New("boom"),
	})
	require.NoError(t, m.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		lines = append(lines, rec)
	}
	require.NoError(t, sc.Err())
	require.Len(t, lines, 3)

	assert.Equal(t, "fetch", lines[0]["type"])
	assert.Equal(t, "exec-1", lines[0]["execution_id"])
	assert.Equal(t, true, lines[0]["rejected"])

	assert.Equal(t, "emission", lines[1]["type"])
	assert.Equal(t, "key_metrics", lines[1]["decision"])
	assert.Equal(t, "high", lines[1]["priority"])
	assert.Equal(t, float64(14), lines[1]["units"])

	assert.Equal(t, false, lines[2]["success"])
	assert.Equal(t, "boom", lines[2]["error"])
}

func TestFileMeter_AppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.jsonl")

	for i := 0; i < 2; i++ {
		m, err := meter.NewFileMeter(path)
		require.NoError(t, err)
		m.OnFetch(fingov.FetchEvent{ExecutionID: "e", Query: "q", Category: "stock"})
		require.NoError(t, m.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, countLines(data))
}

func countLines(data []byte) int {
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}
