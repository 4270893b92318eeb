package sat

import "github.com/samber/lo"

// Assignment holds one truth value per variable; index 0 is variable 1.
type Assignment []bool

// Value reports whether the literal evaluates to true.
func (a Assignment) Value(literal Literal) bool {
	value := a[literal.Var()-1]
	if literal.Positive() {
		return value
	}
	return !value
}

func (a Assignment) Flip(variable int) {
	a[variable-1] = !a[variable-1]
}

func (a Assignment) Clone() Assignment {
	if a == nil {
		return nil
	}
	clone := make(Assignment, len(a))
	copy(clone, a)
	return clone
}

// Literals renders the assignment as signed literals (DIMACS model style).
func (a Assignment) Literals() []Literal {
	return lo.Map(a, func(value bool, i int) Literal {
		if value {
			return Literal(i + 1)
		}
		return Literal(-(i + 1))
	})
}
