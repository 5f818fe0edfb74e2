package main

import (
	"fmt"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/limaJavier/degreeplan/pkg/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importTarget string

var importCmd = &cobra.Command{
	Use:   "import <catalog-file>",
	Short: "Load a JSON or YAML catalog into a database",
	Long: `Reads a catalog file and replaces the courses, majors and sections stored
in the SQLite file or the PostgreSQL database named by the configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		memory, err := catalog.InputFromFile(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		switch importTarget {
		case "sqlite":
			db, err := store.NewSQLite(cfg.Catalog.SQLite)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.Import(ctx, memory); err != nil {
				return err
			}
		case "postgres":
			db, err := store.NewPostgres(ctx, cfg.Catalog.Postgres.DSN())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.Migrate(ctx); err != nil {
				return err
			}
			if err := db.Import(ctx, memory); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%q is not a valid import target: expected sqlite or postgres", importTarget)
		}

		log.Info("catalog imported",
			zap.String("target", importTarget),
			zap.Int("courses", len(memory.Courses())),
			zap.Int("majors", len(memory.Majors())),
			zap.Int("sections", len(memory.Sections())),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importTarget, "target", "t", "sqlite", "Database to load: sqlite or postgres")
	rootCmd.AddCommand(importCmd)
}
