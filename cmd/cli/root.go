package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/limaJavier/degreeplan/internal/config"
	"github.com/limaJavier/degreeplan/internal/logger"
	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/limaJavier/degreeplan/pkg/model"
	"github.com/limaJavier/degreeplan/pkg/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes follow the SAT-solver convention
const (
	exitFound      = 10
	exitInfeasible = 20
	exitViolations = 15
)

// exitCode ends the process with the given status once the command has written its output
type exitCode int

func (code exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(code))
}

var (
	configPath string
	outPath    string
	cfg        *config.Config
	log        *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "degreeplan",
	Short: "Plan the semesters of a degree",
	Long: `Builds a multi-semester course schedule for a major: required courses and
electives are ordered so that prerequisites come first, offerings match the
term and each semester stays within its credit bounds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		log, err = logger.New(cfg.Log)
		return err
	},
}

// Execute runs the root command and exits with the status its subcommand chose
func Execute() {
	err := rootCmd.Execute()
	if log != nil {
		_ = log.Sync()
	}

	var code exitCode
	if errors.As(err, &code) {
		os.Exit(int(code))
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default: ./degreeplan.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "File the output is written to; if empty, it is written to the standard output")
}

// openCatalog connects to the configured catalog source. The returned function releases it
func openCatalog(ctx context.Context) (catalog.Accessor, func(), error) {
	switch cfg.Catalog.Source {
	case "sqlite":
		db, err := store.NewSQLite(cfg.Catalog.SQLite)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case "postgres":
		db, err := store.NewPostgres(ctx, cfg.Catalog.Postgres.DSN())
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		memory, err := catalog.InputFromFile(cfg.Catalog.File)
		if err != nil {
			return nil, nil, err
		}
		return memory, func() {}, nil
	}
}

func newEngine(accessor catalog.Accessor) (*model.Engine, error) {
	options, err := cfg.Engine.Options(log)
	if err != nil {
		return nil, err
	}
	return model.NewEngine(accessor, options...)
}

// withTimeout bounds a planning run by the configured timeout; zero disables it
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if cfg.Engine.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Engine.Timeout)
}

// output opens the --out file, or the standard output when none was given
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outPath == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create output file: %w", err)
	}
	return file, file.Close, nil
}
