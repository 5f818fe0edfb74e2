package main

import (
	"fmt"

	"github.com/limaJavier/degreeplan/pkg/model"
	"github.com/limaJavier/degreeplan/pkg/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	nextFlags  requestFlags
	nextFormat string
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Propose sections for the upcoming semester",
	Long: `Plans the whole degree and then picks concrete sections for the first
semester: only courses whose prerequisites are completed qualify and no two
sections share a meeting time. Exits with 10 when a proposal was built and 20
when the degree cannot be planned.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(nextFormat)
		if err != nil {
			return err
		}
		request, err := nextFlags.request(cmd, cfg.Plan)
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
		result, err := engine.PlanNextSemester(ctx, request)
		if err != nil {
			return fmt.Errorf("an error occurred during planning: %w", err)
		}
		log.Info("next semester proposed",
			zap.String("major", result.Plan.Major),
			zap.String("status", string(result.Plan.Status)),
			zap.Int("sections", len(result.Sections)),
			zap.Bool("exhausted", result.Stats.Exhausted),
		)

		w, closeOutput, err := output(cmd)
		if err != nil {
			return err
		}
		if err := report.WriteNext(w, format, result); err != nil {
			_ = closeOutput()
			return fmt.Errorf("cannot write proposal: %w", err)
		}
		if err := closeOutput(); err != nil {
			return err
		}

		if result.Plan.Status != model.StatusFound {
			return exitCode(exitInfeasible)
		}
		return exitCode(exitFound)
	},
}

func init() {
	nextFlags.bind(nextCmd)
	nextCmd.Flags().StringVarP(&nextFormat, "format", "f", string(report.FormatText), "Output format: text, json or yaml")
	rootCmd.AddCommand(nextCmd)
}
