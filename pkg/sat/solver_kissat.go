package sat

import (
	"context"
	"strings"
)

type kissatSolver struct {
	path string
}

func NewKissatSolver(path string) SATSolver {
	return &kissatSolver{path: path}
}

func (solver *kissatSolver) Solve(ctx context.Context, sat SAT) (SATSolution, error) {
	dimacs := sat.ToDIMACS() // Transform SAT into DIMACS-CNF string format

	output, err := runSolver(ctx, "kissat", solver.path, []string{"-q", "--relaxed"}, strings.NewReader(dimacs))
	if err != nil || output == nil {
		return nil, err
	}
	return parseSolution(output.String()), nil
}
