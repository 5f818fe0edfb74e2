package sat

import (
	"context"
	"fmt"

	"github.com/crillab/gophersat/solver"
)

// gophersatSolver solves in process, so the SAT strategy needs no external binary
type gophersatSolver struct{}

func NewGophersatSolver() SATSolver {
	return &gophersatSolver{}
}

func (gophersat *gophersatSolver) Solve(ctx context.Context, sat SAT) (SATSolution, error) {
	clauses := make([][]int, len(sat.Clauses))
	for i, clause := range sat.Clauses {
		if len(clause) == 0 {
			return nil, nil // The empty clause is never satisfied
		}
		clauses[i] = make([]int, len(clause))
		for j, literal := range clause {
			if literal == 0 || uint64(abs(literal)) > sat.Variables {
				return nil, fmt.Errorf("literal %v out of range for %v variables", literal, sat.Variables)
			}
			clauses[i][j] = int(literal)
		}
	}
	if len(clauses) == 0 {
		solution := make(SATSolution, sat.Variables)
		for i := range solution {
			solution[i] = -int64(i + 1)
		}
		return solution, nil
	}

	// The search itself does not observe the context; a cancelled run is abandoned and left to finish
	done := make(chan SATSolution, 1)
	go func() {
		s := solver.New(solver.ParseSliceNb(clauses, int(sat.Variables)))
		if s.Solve() != solver.Sat {
			done <- nil
			return
		}
		model := s.Model()
		solution := make(SATSolution, len(model))
		for i, value := range model {
			solution[i] = int64(i + 1)
			if !value {
				solution[i] = -solution[i]
			}
		}
		done <- solution
	}()

	select {
	case solution := <-done:
		return solution, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func abs(literal int64) int64 {
	if literal < 0 {
		return -literal
	}
	return literal
}
