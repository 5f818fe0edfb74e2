package sat

import (
	"context"
	"strings"
)

type cadicalSolver struct {
	path string
}

func NewCadicalSolver(path string) SATSolver {
	return &cadicalSolver{path: path}
}

func (solver *cadicalSolver) Solve(ctx context.Context, sat SAT) (SATSolution, error) {
	output, err := runSolver(ctx, "cadical", solver.path, []string{"-q"}, strings.NewReader(sat.ToDIMACS()))
	if err != nil || output == nil {
		return nil, err
	}
	return parseSolution(output.String()), nil
}
