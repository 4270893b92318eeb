package batch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/limaJavier/maxwalksat/internal/metrics"
	"github.com/limaJavier/maxwalksat/internal/report"
	"github.com/limaJavier/maxwalksat/pkg/sat"
)

// Runner solves every problem file of a directory in turn. Failures are contained to the
// file that caused them.
type Runner struct {
	solver   sat.MaxSATSolver
	reporter *report.Reporter
	recorder *metrics.Recorder
	logger   logrus.FieldLogger
}

func NewRunner(solver sat.MaxSATSolver, reporter *report.Reporter, recorder *metrics.Recorder, logger logrus.FieldLogger) *Runner {
	return &Runner{solver: solver, reporter: reporter, recorder: recorder, logger: logger}
}

// Run processes the regular files of directory in name order. It only fails when the
// directory itself cannot be listed. An interrupted solve stops the batch; the files not
// reached yet are logged as skipped.
func (r *Runner) Run(ctx context.Context, directory string) error {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return errors.Wrapf(err, "cannot read problem directory %s", directory)
	}
	files := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (string, bool) {
		return filepath.Join(directory, entry.Name()), entry.Type().IsRegular()
	})

	for i, file := range files {
		if outcome, ok := r.solveFile(ctx, file); ok && outcome == sat.Interrupted {
			if skipped := files[i+1:]; len(skipped) > 0 {
				r.logger.WithField("files", skipped).Warn("interrupted, skipping remaining files")
			}
			break
		}
	}
	return nil
}

func (r *Runner) solveFile(ctx context.Context, file string) (sat.Outcome, bool) {
	logger := r.logger.WithField("file", file)

	formula, err := sat.FormulaFromFile(file)
	if err != nil {
		logger.WithError(err).Warn("cannot parse problem file")
		r.recorder.ObserveParseError()
		r.reporter.Add(report.Entry{File: file, Err: err})
		return 0, false
	}

	result, err := r.solver.Solve(ctx, formula)
	if err == nil {
		err = sat.CheckResult(formula, result)
	}
	if err != nil {
		logger.WithError(err).Error("solve failed")
	}
	r.recorder.ObserveResult(formula, result)
	r.reporter.Add(report.Entry{File: file, Formula: formula, Result: result, Err: err})

	logger.WithFields(logrus.Fields{
		"outcome":   result.Outcome,
		"satisfied": result.SatisfiedCount,
		"clauses":   formula.NumClauses,
		"elapsed":   result.Elapsed,
	}).Info("solve finished")
	return result.Outcome, true
}
