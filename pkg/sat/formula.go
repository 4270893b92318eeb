package sat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

var ErrInvalidFormula = errors.New("invalid formula")

// Literal is a nonzero signed variable index; a negative literal is satisfied when its variable is false.
type Literal int

// Var returns the (1-based) variable the literal refers to. The most negative int has no
// magnitude and yields a negative result, which Validate rejects.
func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

func (l Literal) Positive() bool {
	return l > 0
}

type Clause []Literal

type Formula struct {
	NumVars           int
	LiteralsPerClause int // Informational arity, never enforced
	NumClauses        int
	Clauses           []Clause
}

func NewFormula(numVars int, clauses ...Clause) Formula {
	arity := 0
	for _, clause := range clauses {
		arity = max(arity, len(clause))
	}
	return Formula{
		NumVars:           numVars,
		LiteralsPerClause: arity,
		NumClauses:        len(clauses),
		Clauses:           clauses,
	}
}

// Validate checks the structural invariants every component relies upon.
func (f Formula) Validate() error {
	if f.NumVars < 0 {
		return errors.Wrapf(ErrInvalidFormula, "negative variable count %d", f.NumVars)
	}
	if len(f.Clauses) != f.NumClauses {
		return errors.Wrapf(ErrInvalidFormula, "expected %d clauses, got %d", f.NumClauses, len(f.Clauses))
	}
	for i, clause := range f.Clauses {
		if len(clause) == 0 {
			return errors.Wrapf(ErrInvalidFormula, "clause %d is empty", i+1)
		}
		for _, literal := range clause {
			if variable := literal.Var(); variable < 1 || variable > f.NumVars {
				return errors.Wrapf(ErrInvalidFormula, "clause %d: literal %d out of range [1, %d]", i+1, literal, f.NumVars)
			}
		}
	}
	return nil
}

// WriteDIMACS writes the formula as a DIMACS CNF problem that ParseDIMACS reads back.
func (f Formula) WriteDIMACS(out io.Writer) error {
	writer := bufio.NewWriter(out)
	fmt.Fprintf(writer, "p cnf %d %d\n", f.NumVars, len(f.Clauses))
	line := make([]byte, 0, 64)
	for _, clause := range f.Clauses {
		line = line[:0]
		for _, literal := range clause {
			line = strconv.AppendInt(line, int64(literal), 10)
			line = append(line, ' ')
		}
		line = append(line, '0', '\n')
		if _, err := writer.Write(line); err != nil {
			return errors.Wrap(err, "cannot write DIMACS clause")
		}
	}
	return errors.Wrap(writer.Flush(), "cannot write DIMACS problem")
}
