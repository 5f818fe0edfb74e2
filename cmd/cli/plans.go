package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/limaJavier/degreeplan/pkg/report"
	"github.com/limaJavier/degreeplan/pkg/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var plansMajor string

var plansCmd = &cobra.Command{
	Use:   "plans [id]",
	Short: "List or show plans saved with plan --save",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.NewSQLite(cfg.Catalog.SQLite)
		if err != nil {
			return err
		}
		defer db.Close()
		w := cmd.OutOrStdout()

		if len(args) == 0 {
			plans, err := db.ListPlans(cmd.Context(), plansMajor)
			if err != nil {
				return err
			}
			for _, plan := range plans {
				fmt.Fprintf(w, "%v  %v  %-16v %v (%v semesters)\n",
					plan.Id, plan.CreatedAt.Local().Format("2006-01-02 15:04"), plan.Status, plan.Major, len(plan.Semesters))
			}
			return nil
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("%q is not a valid plan id: %w", args[0], err)
		}
		plan, err := db.LoadPlan(cmd.Context(), id)
		if err != nil {
			return err
		}

		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(report.Document{
			Status:    plan.Status,
			Major:     plan.Major,
			Semesters: plan.Semesters,
			Warnings:  plan.Warnings,
			Stats:     plan.Stats,
		}); err != nil {
			return err
		}
		return encoder.Close()
	},
}

func init() {
	plansCmd.Flags().StringVarP(&plansMajor, "major", "m", "", "Only list the plans of this major")
	rootCmd.AddCommand(plansCmd)
}
