package sat

import (
	"bufio"
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDirectory = "testdata/cnfs/"

func TestGophersat(t *testing.T) {
	solver := NewGophersatSolver()
	t.Run("Satisfiable instances", func(t *testing.T) {
		satisfiableExecution(t, solver)
	})
	t.Run("Agrees with brute force", func(t *testing.T) {
		random := rand.New(rand.NewPCG(7, 11))
		for range 200 {
			//** Arrange
			literals := uint64(random.IntN(8) + 1)
			instance := GenerateSATInstance(random, literals, random.IntN(30)+1, 0.3)

			//** Act
			solution, err := solver.Solve(context.Background(), instance)

			//** Assert
			require.Nil(t, err)
			assert.Equal(t, bruteForce(instance), solution != nil)
			if solution != nil {
				assert.True(t, AssertSATSolution(instance, solution))
			}
		}
	})
	t.Run("Unsatisfiable instance", func(t *testing.T) {
		solution, err := solver.Solve(context.Background(), SAT{Variables: 1, Clauses: [][]int64{{1}, {-1}}})
		assert.Nil(t, err)
		assert.Nil(t, solution)
	})
	t.Run("Empty clause", func(t *testing.T) {
		solution, err := solver.Solve(context.Background(), SAT{Variables: 2, Clauses: [][]int64{{1, 2}, {}}})
		assert.Nil(t, err)
		assert.Nil(t, solution)
	})
	t.Run("No clauses", func(t *testing.T) {
		solution, err := solver.Solve(context.Background(), SAT{Variables: 2})
		assert.Nil(t, err)
		assert.Equal(t, SATSolution{-1, -2}, solution)
	})
	t.Run("Out of range literal", func(t *testing.T) {
		_, err := solver.Solve(context.Background(), SAT{Variables: 1, Clauses: [][]int64{{2}}})
		assert.NotNil(t, err)
	})
}

func TestKissat(t *testing.T) {
	satisfiableExecution(t, NewKissatSolver(executable(t, "kissat")))
}

func TestCadical(t *testing.T) {
	satisfiableExecution(t, NewCadicalSolver(executable(t, "cadical")))
}

func TestMinisat(t *testing.T) {
	satisfiableExecution(t, NewMinisatSolver(executable(t, "minisat")))
}

func TestNewSolver(t *testing.T) {
	config, err := DecodeConfig(map[string]any{"kissatPath": "/opt/kissat"})
	require.Nil(t, err)
	assert.Equal(t, "/opt/kissat", config.KissatPath)
	assert.Equal(t, "cadical", config.CadicalPath)

	for _, name := range []string{"", "gophersat", "kissat", "cadical", "minisat"} {
		solver, err := NewSolver(name, config)
		assert.Nil(t, err)
		assert.NotNil(t, solver)
	}

	_, err = NewSolver("glucose", config)
	assert.NotNil(t, err)
}

func TestParseSolution(t *testing.T) {
	output := "s SATISFIABLE\nv 1 -2 3\nv -4 0\n"
	assert.Equal(t, SATSolution{1, -2, 3, -4}, parseSolution(output))
}

func executable(t *testing.T, name string) string {
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%v is not installed", name)
	}
	return path
}

func satisfiableExecution(t *testing.T, solver SATSolver) {
	testFiles, err := os.ReadDir(testDirectory)
	require.Nil(t, err)

	for _, file := range testFiles {
		//** Arrange
		filename := testDirectory + file.Name()
		sat, err := parseDIMACSFile(filename)
		require.Nil(t, err)

		//** Act
		solution, err := solver.Solve(context.Background(), sat)

		//** Assert
		assert.Nil(t, err)
		assert.NotNil(t, solution, filename)
		assert.True(t, AssertSATSolution(sat, solution), filename)
	}
}

func bruteForce(sat SAT) bool {
	for mask := 0; mask < 1<<sat.Variables; mask++ {
		satisfied := true
		for _, clause := range sat.Clauses {
			clauseSatisfied := false
			for _, literal := range clause {
				value := mask&(1<<(abs(literal)-1)) != 0
				if (literal > 0) == value {
					clauseSatisfied = true
					break
				}
			}
			if !clauseSatisfied {
				satisfied = false
				break
			}
		}
		if satisfied {
			return true
		}
	}
	return false
}

func parseDIMACSFile(fileName string) (SAT, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return SAT{}, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	var sat SAT
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := scanner.Text()
		// Skip comments
		if strings.HasPrefix(line, "c") {
			continue
		}
		// Problem line
		if strings.HasPrefix(line, "p cnf") {
			parts := strings.Fields(line)
			if len(parts) != 4 {
				return SAT{}, fmt.Errorf("invalid problem line: %s", line)
			}
			vars, err := strconv.ParseUint(parts[2], 10, 64)
			if err != nil {
				return SAT{}, fmt.Errorf("invalid variable count: %w", err)
			}
			sat.Variables = vars
			continue
		}
		// Clause line
		var clause []int64
		for _, litStr := range strings.Fields(line) {
			lit, err := strconv.ParseInt(litStr, 10, 64)
			if err != nil {
				return SAT{}, fmt.Errorf("invalid literal '%s': %w", litStr, err)
			}
			if lit == 0 {
				break
			}
			clause = append(clause, lit)
		}
		if len(clause) > 0 {
			sat.Clauses = append(sat.Clauses, clause)
		}
	}

	if err := scanner.Err(); err != nil {
		return SAT{}, fmt.Errorf("error reading file: %w", err)
	}

	return sat, nil
}
