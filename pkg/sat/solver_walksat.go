package sat

import (
	"context"
	"io"
	"math/rand/v2"
	"runtime/debug"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultNoise   = 0.1
)

type walkSATSolver struct {
	timeout  time.Duration
	noise    float64
	maxFlips int // 0 selects the no_clauses/2+1 rule
	newRand  func() *rand.Rand
	now      func() time.Time
	logger   logrus.FieldLogger
}

type Option func(s *walkSATSolver) error

// NewWalkSATSolver builds the MaxWalkSAT local-search solver.
func NewWalkSATSolver(options ...Option) (MaxSATSolver, error) {
	s := walkSATSolver{timeout: DefaultTimeout, noise: DefaultNoise}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *walkSATSolver) error {
		if timeout < 0 {
			return errors.Errorf("timeout must not be negative: %v", timeout)
		}
		s.timeout = timeout
		return nil
	}
}

func WithNoise(noise float64) Option {
	return func(s *walkSATSolver) error {
		if noise < 0 || noise > 1 {
			return errors.Errorf("noise must be within [0, 1]: %v", noise)
		}
		s.noise = noise
		return nil
	}
}

// WithMaxFlips pins the per-retry flip budget instead of deriving it from the clause count.
func WithMaxFlips(maxFlips int) Option {
	return func(s *walkSATSolver) error {
		if maxFlips < 1 {
			return errors.Errorf("max flips must be positive: %d", maxFlips)
		}
		s.maxFlips = maxFlips
		return nil
	}
}

// WithSeed makes every solve replay the same random sequence.
func WithSeed(seed uint64) Option {
	return func(s *walkSATSolver) error {
		s.newRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(seed, seed))
		}
		return nil
	}
}

// WithRand shares rng across every solve, so consecutive solves continue one random sequence.
func WithRand(rng *rand.Rand) Option {
	return func(s *walkSATSolver) error {
		if rng == nil {
			return errors.New("random source must not be nil")
		}
		s.newRand = func() *rand.Rand { return rng }
		return nil
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *walkSATSolver) error {
		s.now = now
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *walkSATSolver) error {
		s.logger = logger
		return nil
	}
}

var defaults = []Option{
	func(s *walkSATSolver) error {
		if s.newRand == nil {
			s.newRand = func() *rand.Rand {
				return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
			}
		}
		return nil
	},
	func(s *walkSATSolver) error {
		if s.now == nil {
			s.now = time.Now
		}
		return nil
	},
	func(s *walkSATSolver) error {
		if s.logger == nil {
			logger := logrus.New()
			logger.SetOutput(io.Discard)
			s.logger = logger
		}
		return nil
	},
}

// Solve runs restarts until the formula is satisfied, ctx is cancelled or the timeout
// elapses, and returns the best assignment seen. A panic during setup or search is recovered
// and reported as ErrInternalFault together with the best assignment found so far, if any.
func (s *walkSATSolver) Solve(ctx context.Context, formula Formula) (result Result, err error) {
	if err := formula.Validate(); err != nil {
		return Result{}, err
	}

	var (
		h     *search
		start time.Time
	)
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithFields(logrus.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("search aborted by an internal fault")
			result = Result{Outcome: Faulted}
			if h != nil {
				result = h.result(Faulted)
			}
			err = errors.Wrapf(ErrInternalFault, "%v", r)
		}
		if !start.IsZero() {
			result.Elapsed = s.now().Sub(start)
		}
	}()

	start = s.now()
	h = s.newSearch(formula)
	return h.run(ctx, start.Add(s.timeout)), nil
}

func (s *walkSATSolver) newSearch(formula Formula) *search {
	rng := s.newRand()
	evaluator := NewEvaluator(formula)
	maxFlips := s.maxFlips
	if maxFlips == 0 {
		maxFlips = formula.NumClauses/2 + 1
	}
	return &search{
		solver:      s,
		evaluator:   evaluator,
		selector:    NewMoveSelector(evaluator, rng, s.noise),
		diversifier: NewDiversifier(rng),
		rng:         rng,
		maxFlips:    maxFlips,
	}
}

// search is the state of a single solve. best is only ever replaced by a fresh copy.
type search struct {
	solver      *walkSATSolver
	evaluator   *Evaluator
	selector    *MoveSelector
	diversifier *Diversifier
	rng         *rand.Rand
	maxFlips    int

	best          Assignment
	bestObjective int
	retries       int
	flips         int
}

func (h *search) run(ctx context.Context, deadline time.Time) Result {
	formula := h.evaluator.Formula()
	for {
		select {
		case <-ctx.Done():
			return h.result(Interrupted)
		default:
		}
		if !h.solver.now().Before(deadline) {
			return h.result(TimedOut)
		}

		h.retries++
		current := h.diversifier.RandomInitialAssignment(formula.NumVars)
		if h.best == nil {
			h.record(current, h.evaluator.Objective(current))
		}

		for flip := 0; flip < h.maxFlips; flip++ {
			unsatisfied := h.evaluator.UnsatisfiedClauses(current)
			if len(unsatisfied) == 0 {
				h.record(current, 0)
				return h.result(Solved)
			}

			clause := formula.Clauses[unsatisfied[h.rng.IntN(len(unsatisfied))]]
			variable := h.selector.Select(clause, current)

			// A fresh draw may already beat everything seen so far
			if flip == 0 && len(unsatisfied) < h.bestObjective {
				h.record(current, len(unsatisfied))
			}

			current.Flip(variable)
			h.flips++
			if objective := h.evaluator.Objective(current); objective < h.bestObjective {
				h.record(current, objective)
				if objective == 0 {
					return h.result(Solved)
				}
			}
		}

		h.solver.logger.WithFields(logrus.Fields{
			"retry":      h.retries,
			"best_unsat": h.bestObjective,
		}).Debug("flip budget exhausted, restarting")
	}
}

func (h *search) record(assignment Assignment, objective int) {
	h.best = assignment.Clone()
	h.bestObjective = objective
}

func (h *search) result(outcome Outcome) Result {
	result := Result{
		Assignment: h.best.Clone(),
		Outcome:    outcome,
		Retries:    h.retries,
		Flips:      h.flips,
	}
	if h.best != nil {
		result.SatisfiedCount = h.evaluator.Formula().NumClauses - h.bestObjective
	}
	return result
}
