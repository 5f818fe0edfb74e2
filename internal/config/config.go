package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/limaJavier/degreeplan/internal/logger"
	"github.com/limaJavier/degreeplan/pkg/model"
	"github.com/limaJavier/degreeplan/pkg/sat"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	validSources    = []string{"file", "sqlite", "postgres"}
	validStrategies = []string{"backtracking", "sat"}
	validSolvers    = []string{"gophersat", "kissat", "cadical", "minisat"}
)

type Config struct {
	Log     logger.Config `mapstructure:"log"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Plan    PlanConfig    `mapstructure:"plan"`
}

// CatalogConfig selects where courses and majors are read from
type CatalogConfig struct {
	Source   string         `mapstructure:"source"`
	File     string         `mapstructure:"file"`
	SQLite   string         `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.MaxConns,
	)
}

type EngineConfig struct {
	Strategy       string              `mapstructure:"strategy"`
	Solver         string              `mapstructure:"solver"`
	SolverPaths    map[string]any      `mapstructure:"solver_paths"`
	MaxNodes       int                 `mapstructure:"max_nodes"`
	MaxRefinements int                 `mapstructure:"max_refinements"`
	Timeout        time.Duration       `mapstructure:"timeout"`
	GERCeiling     int                 `mapstructure:"ger_ceiling"`
	GERCategories  []model.GERCategory `mapstructure:"ger_categories"` // Empty means the default categories
}

// PlanConfig holds the request defaults; command-line flags override them
type PlanConfig struct {
	Semesters  int    `mapstructure:"semesters"`
	MinCredits int    `mapstructure:"min_credits"`
	MaxCredits int    `mapstructure:"max_credits"`
	Start      string `mapstructure:"start"`
	StartYear  int    `mapstructure:"start_year"` // Zero means the current year
	IncludeGER bool   `mapstructure:"include_ger"`
}

// Load reads the configuration. Precedence: environment variables, then the file, then defaults
func Load(path string) (*Config, error) {
	v := viper.New()

	//** Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.file", "catalog.json")
	v.SetDefault("catalog.sqlite", "degreeplan.db")
	v.SetDefault("catalog.postgres.host", "localhost")
	v.SetDefault("catalog.postgres.port", 5432)
	v.SetDefault("catalog.postgres.name", "degreeplan")
	v.SetDefault("catalog.postgres.user", "postgres")
	v.SetDefault("catalog.postgres.password", "")
	v.SetDefault("catalog.postgres.sslmode", "disable")
	v.SetDefault("catalog.postgres.max_conns", 4)

	v.SetDefault("engine.strategy", "backtracking")
	v.SetDefault("engine.solver", "gophersat")
	v.SetDefault("engine.solver_paths", map[string]any{})
	v.SetDefault("engine.max_nodes", model.DefaultMaxNodes)
	v.SetDefault("engine.max_refinements", model.DefaultMaxRefinements)
	v.SetDefault("engine.timeout", "30s")
	v.SetDefault("engine.ger_ceiling", model.DefaultGERCeiling)

	v.SetDefault("plan.semesters", 8)
	v.SetDefault("plan.min_credits", 12)
	v.SetDefault("plan.max_credits", 18)
	v.SetDefault("plan.start", "fall")
	v.SetDefault("plan.start_year", 0)
	v.SetDefault("plan.include_ger", false)

	//** Configuration file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("degreeplan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	//** Environment variables
	v.SetEnvPrefix("DEGREEPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(validSources, c.Catalog.Source) {
		return fmt.Errorf("invalid config: catalog.source must be one of %v: %q", validSources, c.Catalog.Source)
	} else if !slices.Contains(validStrategies, c.Engine.Strategy) {
		return fmt.Errorf("invalid config: engine.strategy must be one of %v: %q", validStrategies, c.Engine.Strategy)
	} else if !slices.Contains(validSolvers, c.Engine.Solver) {
		return fmt.Errorf("invalid config: engine.solver must be one of %v: %q", validSolvers, c.Engine.Solver)
	} else if c.Engine.MaxNodes <= 0 || c.Engine.MaxRefinements <= 0 {
		return fmt.Errorf("invalid config: engine.max_nodes and engine.max_refinements must be positive")
	} else if c.Engine.Timeout < 0 {
		return fmt.Errorf("invalid config: engine.timeout must not be negative")
	} else if c.Plan.Semesters < 1 {
		return fmt.Errorf("invalid config: plan.semesters must be positive")
	} else if c.Plan.MinCredits < 0 || c.Plan.MinCredits > c.Plan.MaxCredits {
		return fmt.Errorf("invalid config: plan credit bounds [%v, %v] are invalid", c.Plan.MinCredits, c.Plan.MaxCredits)
	} else if _, err := model.ParseTerm(c.Plan.Start); err != nil {
		return fmt.Errorf("invalid config: plan.start: %w", err)
	}
	return nil
}

// Planner builds the semester-assignment strategy selected by the engine section
func (c EngineConfig) Planner() (model.Planner, error) {
	if c.Strategy == "backtracking" {
		return model.NewBacktrackingPlanner(c.MaxNodes), nil
	}

	paths, err := sat.DecodeConfig(c.SolverPaths)
	if err != nil {
		return nil, err
	}
	solver, err := sat.NewSolver(c.Solver, paths)
	if err != nil {
		return nil, err
	}
	return model.NewSatPlanner(solver, c.MaxRefinements), nil
}

// Options translates the engine section into engine options
func (c EngineConfig) Options(logger *zap.Logger) ([]model.Option, error) {
	planner, err := c.Planner()
	if err != nil {
		return nil, err
	}

	options := []model.Option{
		model.WithPlanner(planner),
		model.WithLogger(logger),
		model.WithMaxNodes(c.MaxNodes),
		model.WithGERCeiling(c.GERCeiling),
	}
	if len(c.GERCategories) > 0 {
		options = append(options, model.WithGERCategories(c.GERCategories))
	}
	return options, nil
}
