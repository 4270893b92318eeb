package sat

import (
	"time"

	"github.com/pkg/errors"
)

var ErrInternalFault = errors.New("internal fault during search")

type Outcome int

const (
	Solved Outcome = iota
	TimedOut
	Interrupted
	Faulted
)

var outcomeNames = map[Outcome]string{
	Solved:      "solved",
	TimedOut:    "timed-out",
	Interrupted: "interrupted",
	Faulted:     "faulted",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Result is the outcome of one solve. Assignment is nil when no retry produced an
// assignment before the search stopped; SatisfiedCount is meaningless in that case.
type Result struct {
	Assignment     Assignment
	SatisfiedCount int
	Elapsed        time.Duration
	Outcome        Outcome
	Retries        int
	Flips          int
}

func (r Result) HasAssignment() bool {
	return r.Assignment != nil
}

func (r Result) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}
