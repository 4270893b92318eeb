package sat

import "math/rand/v2"

// MoveSelector picks the variable to flip inside an unsatisfied clause.
type MoveSelector struct {
	evaluator *Evaluator
	rng       *rand.Rand
	noise     float64
}

func NewMoveSelector(evaluator *Evaluator, rng *rand.Rand, noise float64) *MoveSelector {
	return &MoveSelector{evaluator: evaluator, rng: rng, noise: noise}
}

// FreeMove returns the first variable of clause, in literal order, whose flip breaks no clause.
func (s *MoveSelector) FreeMove(clause Clause, assignment Assignment) (int, bool) {
	for _, literal := range clause {
		if s.evaluator.BreakCount(assignment, literal.Var()) == 0 {
			return literal.Var(), true
		}
	}
	return 0, false
}

func (s *MoveSelector) RandomMove(clause Clause) int {
	return clause[s.rng.IntN(len(clause))].Var()
}

// GreedyMove returns the variable with the strictly smallest break count; ties keep the first one seen.
func (s *MoveSelector) GreedyMove(clause Clause, assignment Assignment) int {
	best, bestBreakCount := 0, -1
	for _, literal := range clause {
		breakCount := s.evaluator.BreakCount(assignment, literal.Var())
		if bestBreakCount < 0 || breakCount < bestBreakCount {
			best, bestBreakCount = literal.Var(), breakCount
		}
	}
	return best
}

// Select applies the policy: a free move if one exists, else a random move with probability
// noise, else the greedy move.
func (s *MoveSelector) Select(clause Clause, assignment Assignment) int {
	if variable, ok := s.FreeMove(clause, assignment); ok {
		return variable
	}
	if s.rng.Float64() < s.noise {
		return s.RandomMove(clause)
	}
	return s.GreedyMove(clause, assignment)
}
