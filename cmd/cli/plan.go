package main

import (
	"fmt"

	"github.com/limaJavier/degreeplan/pkg/model"
	"github.com/limaJavier/degreeplan/pkg/report"
	"github.com/limaJavier/degreeplan/pkg/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	planFlags  requestFlags
	planFormat string
	savePlan   bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build the full semester plan of a major",
	Long: `Builds every semester of a major from the configured catalog and writes
it as text, json, yaml, csv or xlsx. Exits with 10 when a plan was found and
20 when the major is unknown or no plan satisfies the constraints.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(planFormat)
		if err != nil {
			return err
		}
		request, err := planFlags.request(cmd, cfg.Plan)
		if err != nil {
			return err
		}

		accessor, release, err := openCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer release()
		engine, err := newEngine(accessor)
		if err != nil {
			return err
		}

		ctx, cancel := withTimeout(cmd.Context())
		defer cancel()
		result, err := engine.Plan(ctx, request)
		if err != nil {
			return fmt.Errorf("an error occurred during planning: %w", err)
		}
		log.Info("plan finished",
			zap.String("major", result.Major),
			zap.String("status", string(result.Status)),
			zap.Int("warnings", len(result.Warnings)),
			zap.Int("nodes", result.Stats.NodesExpanded),
		)

		if savePlan {
			if err := save(cmd, result); err != nil {
				return err
			}
		}

		w, closeOutput, err := output(cmd)
		if err != nil {
			return err
		}
		if err := report.Write(w, format, result); err != nil {
			_ = closeOutput()
			return fmt.Errorf("cannot write plan: %w", err)
		}
		if err := closeOutput(); err != nil {
			return err
		}

		if result.Status != model.StatusFound {
			return exitCode(exitInfeasible)
		}
		return exitCode(exitFound)
	},
}

func save(cmd *cobra.Command, result model.Result) error {
	db, err := store.NewSQLite(cfg.Catalog.SQLite)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SavePlan(cmd.Context(), result)
	if err != nil {
		return err
	}
	log.Info("plan saved", zap.Stringer("id", id), zap.String("database", cfg.Catalog.SQLite))
	return nil
}

func init() {
	planFlags.bind(planCmd)
	planCmd.Flags().StringVarP(&planFormat, "format", "f", string(report.FormatText), fmt.Sprintf("Output format, one of %v", report.Formats))
	planCmd.Flags().BoolVar(&savePlan, "save", false, "Store the result in the SQLite plan store")
	rootCmd.AddCommand(planCmd)
}
