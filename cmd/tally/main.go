package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/tabsvspaces/internal/adapters/repository"
	"github.com/vncsmyrnk/tabsvspaces/internal/config"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/services"
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
	var (
		asJSON  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Print the current vote tally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			store, err := repository.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := services.NewSummaryService(store.Votes).Summarize(ctx)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Store, "store", cfg.Store, "postgres, sqlite, firestore or mongo")
	cmd.Flags().StringVar(&cfg.PostgresDSN, "dsn", cfg.PostgresDSN, "postgres connection string")
	cmd.Flags().StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite database file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "give up after this long")

	return cmd
}

func printSummary(w io.Writer, s *domain.Summary) {
	fmt.Fprintf(w, "TABS:   %d\n", s.TabsCount)
	fmt.Fprintf(w, "SPACES: %d\n", s.SpacesCount)
	if s.HasLeader() {
		fmt.Fprintf(w, "Lead:   %s\n", s.LeadTeam)
	} else {
		fmt.Fprintln(w, "Lead:   tie")
	}

	if len(s.RecentVotes) == 0 {
		return
	}
	fmt.Fprintln(w, "\nRecent votes:")
	for _, v := range s.RecentVotes {
		ts := "-"
		if !v.Timestamp.IsZero() {
			ts = v.Timestamp.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "  %-25s %-6s %s\n", ts, v.Team, v.User)
	}
}
