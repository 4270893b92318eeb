package sat

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// All variables false: (1 2) is unsatisfied and flipping 1 breaks one clause, flipping 2 breaks
// one clause as well.
var tiedFormula = NewFormula(3, Clause{1, 2}, Clause{-1, 3}, Clause{-2, 3})

func newTestSelector(formula Formula, noise float64) *MoveSelector {
	return NewMoveSelector(NewEvaluator(formula), rand.New(rand.NewPCG(1, 2)), noise)
}

func TestFreeMove(t *testing.T) {
	selector := newTestSelector(satisfiableFormula, 0)

	variable, ok := selector.FreeMove(Clause{3, -1}, Assignment{true, false, false})
	assert.True(t, ok)
	assert.Equal(t, 1, variable)

	// Both literals are free, the first one wins
	variable, ok = selector.FreeMove(Clause{3, -1}, Assignment{true, true, false})
	assert.True(t, ok)
	assert.Equal(t, 3, variable)

	_, ok = newTestSelector(tiedFormula, 0).FreeMove(Clause{1, 2}, Assignment{false, false, false})
	assert.False(t, ok)
}

func TestGreedyMoveKeepsFirstOnTies(t *testing.T) {
	selector := newTestSelector(tiedFormula, 0)
	assignment := Assignment{false, false, false}

	assert.Equal(t, 1, selector.GreedyMove(Clause{1, 2}, assignment))
	assert.Equal(t, 2, selector.GreedyMove(Clause{2, 1}, assignment))
}

func TestGreedyMovePicksMinimum(t *testing.T) {
	formula := NewFormula(4, Clause{1, 2}, Clause{-1, 3}, Clause{-2, 3}, Clause{-1, 4})
	selector := newTestSelector(formula, 0)
	assignment := Assignment{false, false, false, false}

	assert.Equal(t, 2, selector.GreedyMove(Clause{1, 2}, assignment))
}

func TestMoveSelectorContracts(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 17))

	for range 50 {
		//** Arrange
		numVars := rng.IntN(10) + 2
		formula := GenerateFormula(rng, numVars, rng.IntN(30)+1, 3)
		evaluator := NewEvaluator(formula)
		selector := NewMoveSelector(evaluator, rng, 0.5)
		assignment := randomAssignment(rng, numVars)
		clause := formula.Clauses[rng.IntN(len(formula.Clauses))]

		//** Act
		free, ok := selector.FreeMove(clause, assignment)
		greedy := selector.GreedyMove(clause, assignment)

		//** Assert
		if ok {
			assert.Equal(t, 0, evaluator.BreakCount(assignment, free))
		}
		minimum := evaluator.BreakCount(assignment, clause[0].Var())
		for _, literal := range clause {
			minimum = min(minimum, evaluator.BreakCount(assignment, literal.Var()))
		}
		assert.Equal(t, minimum, evaluator.BreakCount(assignment, greedy))
	}
}

func TestSelectNoiseExtremes(t *testing.T) {
	clause := Clause{1, 2}
	assignment := Assignment{false, false, false}

	greedy := newTestSelector(tiedFormula, 0)
	for range 20 {
		assert.Equal(t, 1, greedy.Select(clause, assignment))
	}

	random := newTestSelector(tiedFormula, 1)
	seen := map[int]bool{}
	for range 200 {
		seen[random.Select(clause, assignment)] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, seen)
}

func TestSelectPrefersFreeMove(t *testing.T) {
	selector := newTestSelector(satisfiableFormula, 1)

	for range 20 {
		assert.Equal(t, 1, selector.Select(Clause{3, -1}, Assignment{true, false, false}))
	}
}
