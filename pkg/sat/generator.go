package sat

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// GenerateFormula builds a random formula whose clauses pick literalsPerClause distinct
// variables (capped at numVars) with random polarity.
func GenerateFormula(rng *rand.Rand, numVars, numClauses, literalsPerClause int) Formula {
	width := min(literalsPerClause, numVars)
	clauses := make([]Clause, numClauses)
	for i := range clauses {
		clauses[i] = lo.Map(rng.Perm(numVars)[:width], func(variable int, _ int) Literal {
			if rng.Float32() < 0.5 {
				return Literal(-(variable + 1))
			}
			return Literal(variable + 1)
		})
	}
	return Formula{
		NumVars:           numVars,
		LiteralsPerClause: width,
		NumClauses:        numClauses,
		Clauses:           clauses,
	}
}

// CheckResult verifies that a result is consistent with the formula it was computed for.
func CheckResult(formula Formula, result Result) error {
	if !result.HasAssignment() {
		if result.Outcome == Solved {
			return errors.New("solved result without an assignment")
		}
		return nil
	}
	if len(result.Assignment) != formula.NumVars {
		return errors.Errorf("assignment has %d values for %d variables", len(result.Assignment), formula.NumVars)
	}
	if satisfied := SatisfiedCount(formula, result.Assignment); satisfied != result.SatisfiedCount {
		return errors.Errorf("assignment satisfies %d clauses, result claims %d", satisfied, result.SatisfiedCount)
	}
	if result.Outcome == Solved && result.SatisfiedCount != formula.NumClauses {
		return errors.Errorf("solved result leaves %d clauses unsatisfied", formula.NumClauses-result.SatisfiedCount)
	}
	return nil
}
