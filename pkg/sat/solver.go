package sat

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

type SATSolver interface {
	Solve(ctx context.Context, sat SAT) (SATSolution, error) // Returns a solution of the SAT instance if satisfiable, else returns nil (these are valid outputs where error shall be nil)
}

// Config holds the executable paths of the external solvers
type Config struct {
	KissatPath  string `mapstructure:"kissatPath"`
	CadicalPath string `mapstructure:"cadicalPath"`
	MinisatPath string `mapstructure:"minisatPath"`
}

// DecodeConfig reads solver paths from a generic map such as a viper sub-tree
func DecodeConfig(raw map[string]any) (Config, error) {
	config := Config{
		KissatPath:  "kissat",
		CadicalPath: "cadical",
		MinisatPath: "minisat",
	}
	if err := mapstructure.Decode(raw, &config); err != nil {
		return Config{}, fmt.Errorf("cannot decode solver config: %w", err)
	}
	return config, nil
}

// NewSolver returns the solver registered under name: "gophersat", "kissat", "cadical" or "minisat"
func NewSolver(name string, config Config) (SATSolver, error) {
	switch name {
	case "", "gophersat":
		return NewGophersatSolver(), nil
	case "kissat":
		return NewKissatSolver(config.KissatPath), nil
	case "cadical":
		return NewCadicalSolver(config.CadicalPath), nil
	case "minisat":
		return NewMinisatSolver(config.MinisatPath), nil
	default:
		return nil, fmt.Errorf("unknown SAT solver %q", name)
	}
}
