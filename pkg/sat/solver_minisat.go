package sat

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type minisatSolver struct {
	path string
}

func NewMinisatSolver(path string) SATSolver {
	return &minisatSolver{path: path}
}

func (solver *minisatSolver) Solve(ctx context.Context, sat SAT) (SATSolution, error) {
	// minisat reads and writes files instead of standard streams
	inputTempFile, err := os.CreateTemp("", "dimacs-*.cnf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %v", err)
	}
	defer os.Remove(inputTempFile.Name())

	outputTempFile, err := os.CreateTemp("", "minisat_output-*.cnf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %v", err)
	}
	outputTempFile.Close()
	defer os.Remove(outputTempFile.Name())

	if _, err := inputTempFile.WriteString(sat.ToDIMACS()); err != nil {
		return nil, fmt.Errorf("failed to write DIMACS to temporary file: %v", err)
	}
	if err := inputTempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %v", err)
	}

	output, err := runSolver(ctx, "minisat", solver.path, []string{"-verb=0", inputTempFile.Name(), outputTempFile.Name()}, nil)
	if err != nil || output == nil {
		return nil, err
	}

	result, err := os.ReadFile(outputTempFile.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %v", err)
	}
	return solver.parseSolution(string(result))
}

func (solver *minisatSolver) parseSolution(solverOutput string) (SATSolution, error) {
	lines := strings.Split(solverOutput, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "SAT" {
		return nil, fmt.Errorf("unexpected minisat output: %q", solverOutput)
	}

	// The first line is the header, we only need the second line
	solution := make(SATSolution, 0)
	for _, valueStr := range strings.Fields(lines[1]) {
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal in minisat output: %v", err)
		}
		solution = append(solution, value)
	}
	return lo.Filter(solution, func(value int64, _ int) bool { return value != 0 }), nil
}
