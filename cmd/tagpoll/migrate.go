package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tagpoll/tagpoll/internal/config"
	"github.com/tagpoll/tagpoll/internal/store/migrations"
)

func newMigrateCommand(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Long: `Apply the embedded migrations.

In dev mode the schema is dropped first and every migration is reapplied.
In prod mode only migrations not yet recorded are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := migrations.Run(cmd.Context(), db, migrationMode(cfg))
			if err != nil {
				color.New(color.FgRed).Fprintf(os.Stderr, "migration failed: %v\n", err)
				return err
			}

			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func printResult(w io.Writer, result migrations.Result) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	bold.Fprintf(w, "Migrations (%s mode)\n", result.Mode)
	if result.Reset {
		color.New(color.FgYellow).Fprintln(w, "  schema reset")
	}
	for _, v := range result.Applied {
		green.Fprintf(w, "  applied  %04d\n", v)
	}
	for _, v := range result.Skipped {
		faint.Fprintf(w, "  skipped  %04d\n", v)
	}
	if len(result.Applied) == 0 {
		fmt.Fprintln(w, "  database is up to date")
	}
}
