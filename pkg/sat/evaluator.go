package sat

import "github.com/samber/lo"

func IsClauseSatisfied(clause Clause, assignment Assignment) bool {
	for _, literal := range clause {
		if assignment.Value(literal) {
			return true
		}
	}
	return false
}

func SatisfiedCount(formula Formula, assignment Assignment) int {
	return lo.CountBy(formula.Clauses, func(clause Clause) bool {
		return IsClauseSatisfied(clause, assignment)
	})
}

// Objective is the number of unsatisfied clauses, the quantity the search minimizes.
func Objective(formula Formula, assignment Assignment) int {
	return formula.NumClauses - SatisfiedCount(formula, assignment)
}

// BreakCount counts the clauses satisfied by assignment that flipping variable would leave
// unsatisfied. The assignment is flipped in place and always restored before returning.
func BreakCount(formula Formula, assignment Assignment, variable int) int {
	return breakCount(formula.Clauses, lo.Range(len(formula.Clauses)), assignment, variable)
}

func breakCount(clauses []Clause, candidates []int, assignment Assignment, variable int) int {
	before := make([]bool, len(candidates))
	for i, index := range candidates {
		before[i] = IsClauseSatisfied(clauses[index], assignment)
	}

	assignment.Flip(variable)
	defer assignment.Flip(variable)

	broken := 0
	for i, index := range candidates {
		if before[i] && !IsClauseSatisfied(clauses[index], assignment) {
			broken++
		}
	}
	return broken
}

// Evaluator answers satisfaction queries for a single formula. It keeps, for every
// variable, the clauses it occurs in so that break counts only visit affected clauses.
type Evaluator struct {
	formula     Formula
	occurrences [][]int // occurrences[v-1] lists each clause containing v once
}

func NewEvaluator(formula Formula) *Evaluator {
	occurrences := make([][]int, formula.NumVars)
	for index, clause := range formula.Clauses {
		for _, variable := range lo.Uniq(lo.Map(clause, func(literal Literal, _ int) int { return literal.Var() })) {
			occurrences[variable-1] = append(occurrences[variable-1], index)
		}
	}
	return &Evaluator{formula: formula, occurrences: occurrences}
}

func (e *Evaluator) Formula() Formula {
	return e.formula
}

func (e *Evaluator) SatisfiedCount(assignment Assignment) int {
	return SatisfiedCount(e.formula, assignment)
}

func (e *Evaluator) Objective(assignment Assignment) int {
	return Objective(e.formula, assignment)
}

// UnsatisfiedClauses returns the indices of the clauses assignment leaves unsatisfied.
func (e *Evaluator) UnsatisfiedClauses(assignment Assignment) []int {
	unsatisfied := make([]int, 0)
	for index, clause := range e.formula.Clauses {
		if !IsClauseSatisfied(clause, assignment) {
			unsatisfied = append(unsatisfied, index)
		}
	}
	return unsatisfied
}

// BreakCount matches the package level BreakCount, restricted to the clauses containing variable.
func (e *Evaluator) BreakCount(assignment Assignment, variable int) int {
	return breakCount(e.formula.Clauses, e.occurrences[variable-1], assignment, variable)
}
