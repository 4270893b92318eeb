// Package exact wraps complete solvers used as reference oracles by the benchmark and by
// tests. They are exponential in the worst case and only meant for small formulas.
package exact

import (
	"strconv"

	"github.com/crillab/gophersat/maxsat"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/samber/lo"

	"github.com/limaJavier/maxwalksat/pkg/sat"
)

const satisfiable = 1

// Satisfiable decides whether every clause of the formula can be satisfied at once.
func Satisfiable(formula sat.Formula) bool {
	g := gini.NewV(formula.NumVars)
	for _, clause := range formula.Clauses {
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
		}
		g.Add(z.LitNull)
	}
	return g.Solve() == satisfiable
}

// Optimum returns the minimum number of unsatisfied clauses together with an assignment reaching it.
func Optimum(formula sat.Formula) (int, sat.Assignment) {
	if len(formula.Clauses) == 0 {
		return 0, make(sat.Assignment, formula.NumVars)
	}

	constrs := lo.Map(formula.Clauses, func(clause sat.Clause, _ int) maxsat.Constr {
		return maxsat.SoftClause(lo.Map(clause, func(literal sat.Literal, _ int) maxsat.Lit {
			name := strconv.Itoa(literal.Var())
			if literal.Positive() {
				return maxsat.Var(name)
			}
			return maxsat.Not(name)
		})...)
	})

	model, cost := maxsat.New(constrs...).Solve()
	assignment := make(sat.Assignment, formula.NumVars)
	for i := range assignment {
		assignment[i] = model[strconv.Itoa(i+1)] // Variables absent from every clause stay false
	}
	return cost, assignment
}
