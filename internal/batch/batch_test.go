package batch

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/maxwalksat/internal/metrics"
	"github.com/limaJavier/maxwalksat/internal/report"
	"github.com/limaJavier/maxwalksat/pkg/sat"
)

type faultySolver struct{}

func (faultySolver) Solve(context.Context, sat.Formula) (sat.Result, error) {
	return sat.Result{Outcome: sat.Faulted}, errors.Wrap(sat.ErrInternalFault, "boom")
}

func writeProblems(t *testing.T) string {
	directory := t.TempDir()
	files := map[string]string{
		"max-sat-problem-1.txt": "3\n2\n2\n3 -1\n-3 2\n",
		"max-sat-problem-2.txt": "2\ntwo\n4\n1 2\n",
		"max-sat-problem-3.txt": "2\n2\n4\n1 2\n-1 -2\n1 -2\n-1 2\n\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(directory, name), []byte(content), 0666))
	}
	require.NoError(t, os.Mkdir(filepath.Join(directory, "nested"), 0755))
	return directory
}

func newRunner(t *testing.T, solver sat.MaxSATSolver) (*Runner, *report.Reporter, *metrics.Recorder) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	reporter := report.NewReporter(&bytes.Buffer{})
	recorder := metrics.NewRecorder()
	return NewRunner(solver, reporter, recorder, logger), reporter, recorder
}

func TestRunContainsParseErrors(t *testing.T) {
	//** Arrange
	solver, err := sat.NewWalkSATSolver(sat.WithSeed(1), sat.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	runner, reporter, recorder := newRunner(t, solver)

	//** Act
	err = runner.Run(context.Background(), writeProblems(t))

	//** Assert
	require.NoError(t, err)
	entries := reporter.Entries()
	require.Len(t, entries, 3)

	assert.NoError(t, entries[0].Err)
	assert.Equal(t, sat.Solved, entries[0].Result.Outcome)

	var parseErr *sat.ParseError
	assert.ErrorAs(t, entries[1].Err, &parseErr)

	assert.NoError(t, entries[2].Err)
	assert.Equal(t, sat.TimedOut, entries[2].Result.Outcome)
	assert.Equal(t, 3, entries[2].Result.SatisfiedCount)

	expected := `
# HELP maxwalksat_parse_errors_total Number of problem files rejected by the parser
# TYPE maxwalksat_parse_errors_total counter
maxwalksat_parse_errors_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(recorder.Registry(), strings.NewReader(expected), "maxwalksat_parse_errors_total"))
}

func TestRunContainsInternalFaults(t *testing.T) {
	runner, reporter, _ := newRunner(t, faultySolver{})

	err := runner.Run(context.Background(), writeProblems(t))

	require.NoError(t, err)
	entries := reporter.Entries()
	require.Len(t, entries, 3)
	assert.ErrorIs(t, entries[0].Err, sat.ErrInternalFault)
	assert.ErrorIs(t, entries[2].Err, sat.ErrInternalFault)
}

func TestRunStopsWhenInterrupted(t *testing.T) {
	solver, err := sat.NewWalkSATSolver(sat.WithSeed(1))
	require.NoError(t, err)
	runner, reporter, _ := newRunner(t, solver)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = runner.Run(ctx, writeProblems(t))

	require.NoError(t, err)
	entries := reporter.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, sat.Interrupted, entries[0].Result.Outcome)
	assert.False(t, entries[0].Result.HasAssignment())
}

func TestRunMissingDirectory(t *testing.T) {
	runner, _, _ := newRunner(t, faultySolver{})

	err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))

	assert.Error(t, err)
}
