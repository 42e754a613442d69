package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/tabsvspaces/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	var dsn, direction string

	cmd := &cobra.Command{
		Use:   "migrations <name>",
		Short: "Run one postgres migration",
		Long: "Runs the embedded migration file whose name ends in <name>.<direction>.sql, " +
			"e.g. `migrations create_votes --direction down`.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := sql.Open("postgres", dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			file, err := postgres.RunMigration(cmd.Context(), db, args[0], direction)
			if err != nil {
				return fmt.Errorf("failed to execute migration: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migration %s executed successfully.\n", file)
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", cfg.PostgresDSN, "postgres connection string")
	cmd.Flags().StringVar(&direction, "direction", "up", `"up" or "down"`)

	return cmd
}
