package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/limaJavier/maxwalksat/pkg/sat"
)

func TestReporter(t *testing.T) {
	//** Arrange
	var out bytes.Buffer
	reporter := NewReporter(&out)
	formula := sat.NewFormula(3, sat.Clause{3, -1}, sat.Clause{-3, 2})

	//** Act
	reporter.Add(Entry{
		File:    "solved.txt",
		Formula: formula,
		Result: sat.Result{
			Assignment:     sat.Assignment{false, true, true},
			SatisfiedCount: 2,
			Elapsed:        1500 * time.Millisecond,
			Outcome:        sat.Solved,
			Retries:        1,
			Flips:          2,
		},
	})
	reporter.Add(Entry{File: "broken.txt", Err: &sat.ParseError{File: "broken.txt", Line: 2, Err: errors.New("invalid header value")}})
	reporter.Add(Entry{File: "cancelled.txt", Formula: formula, Result: sat.Result{Outcome: sat.Interrupted}})
	reporter.Summary()

	//** Assert
	output := out.String()
	assert.Contains(t, output, "satisfied: 2/2")
	assert.Contains(t, output, "assignment: -1 2 3")
	assert.Contains(t, output, "outcome: solved elapsed: 1.500s retries: 1 flips: 2")
	assert.Contains(t, output, "error: broken.txt:2: invalid header value")
	assert.Contains(t, output, "assignment: none (no trial completed)")
	assert.Contains(t, output, "parse-error")
	assert.Contains(t, output, "interrupted")
	assert.Len(t, reporter.Entries(), 3)
}
