package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/maxwalksat/pkg/sat"
)

func TestRecorder(t *testing.T) {
	//** Arrange
	recorder := NewRecorder()
	formula := sat.NewFormula(2, sat.Clause{1}, sat.Clause{-1}, sat.Clause{2})

	//** Act
	recorder.ObserveResult(formula, sat.Result{
		Assignment:     sat.Assignment{true, true},
		SatisfiedCount: 2,
		Elapsed:        20 * time.Millisecond,
		Outcome:        sat.TimedOut,
		Retries:        3,
		Flips:          12,
	})
	recorder.ObserveResult(formula, sat.Result{Outcome: sat.Interrupted})
	recorder.ObserveParseError()

	//** Assert
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.solves.WithLabelValues("timed-out")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.solves.WithLabelValues("interrupted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.parseErrors))
	assert.Equal(t, 3.0, testutil.ToFloat64(recorder.retries))
	assert.Equal(t, 12.0, testutil.ToFloat64(recorder.flips))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.unsatisfied))
}

func TestWriteToTextfile(t *testing.T) {
	recorder := NewRecorder()
	recorder.ObserveParseError()
	path := filepath.Join(t.TempDir(), "maxwalksat.prom")

	require.NoError(t, recorder.WriteToTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "maxwalksat_parse_errors_total 1")
}
