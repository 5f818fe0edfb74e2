package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/limaJavier/degreeplan/pkg/model"
	"github.com/limaJavier/degreeplan/pkg/report"
	"github.com/limaJavier/degreeplan/pkg/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verifyTaken      []string
	verifyMaxCredits int
	verifyId         string
)

var verifyCmd = &cobra.Command{
	Use:   "verify [plan-file]",
	Short: "Check a written or stored plan",
	Long: `Checks a plan written with --format json or yaml, or one saved in the plan
store with --id: courses appear once, match the offering of their term, follow
their prerequisites and no semester exceeds the maximum credit hours. Exits
with 15 when the plan breaks any rule.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var semesters []model.SemesterRecord
		switch {
		case verifyId != "" && len(args) == 0:
			id, err := uuid.Parse(verifyId)
			if err != nil {
				return fmt.Errorf("%q is not a valid plan id: %w", verifyId, err)
			}
			db, err := store.NewSQLite(cfg.Catalog.SQLite)
			if err != nil {
				return err
			}
			defer db.Close()
			plan, err := db.LoadPlan(cmd.Context(), id)
			if err != nil {
				return err
			}
			semesters = plan.Semesters
		case verifyId == "" && len(args) == 1:
			document, err := readDocument(args[0])
			if err != nil {
				return err
			}
			semesters = document.Semesters
		default:
			return fmt.Errorf("either a plan file or --id must be given")
		}

		maxCredits := cfg.Plan.MaxCredits
		if cfg.Plan.IncludeGER {
			maxCredits = max(maxCredits, cfg.Engine.GERCeiling)
		}
		if cmd.Flags().Changed("max-credits") {
			maxCredits = verifyMaxCredits
		}

		violations := model.CheckRecords(semesters, verifyTaken, maxCredits)
		for _, violation := range violations {
			fmt.Fprintln(cmd.OutOrStdout(), violation)
		}
		log.Info("plan verified", zap.Int("semesters", len(semesters)), zap.Int("violations", len(violations)))
		if len(violations) > 0 {
			return exitCode(exitViolations)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "plan is valid")
		return nil
	},
}

func readDocument(path string) (report.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return report.Document{}, fmt.Errorf("cannot open plan: %w", err)
	}
	defer file.Close()

	format := report.FormatJSON
	if extension := strings.ToLower(filepath.Ext(path)); extension == ".yaml" || extension == ".yml" {
		format = report.FormatYAML
	}
	return report.ReadDocument(file, format)
}

func init() {
	verifyCmd.Flags().StringSliceVar(&verifyTaken, "taken", nil, "Courses completed before the plan starts, comma separated")
	verifyCmd.Flags().IntVar(&verifyMaxCredits, "max-credits", 0, "Maximum credit hours per semester")
	verifyCmd.Flags().StringVar(&verifyId, "id", "", "Identifier of a plan in the plan store")
	rootCmd.AddCommand(verifyCmd)
}
