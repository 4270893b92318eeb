package sat

import "context"

type MaxSATSolver interface {
	Solve(context.Context, Formula) (Result, error) // Returns the best assignment found before the budget ran out; error is reserved for invalid input and internal faults
}
