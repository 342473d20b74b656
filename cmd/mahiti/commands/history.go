// ABOUTME: CLI command to show recently answered questions
// ABOUTME: Reads the query history table and prints question/answer pairs
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently answered questions",
		Long: `Show the most recent question/answer pairs, newest first.

Examples:
  mahiti history
  mahiti history --limit 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of entries to show")

	return cmd
}

func runHistory(cmd *cobra.Command, limit int) error {
	_ = godotenv.Load()

	if err := validatePositiveInt(limit, "limit"); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	queries, err := a.store.Queries().Recent(limit)
	if err != nil {
		return fmt.Errorf("loading query history: %w", err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(queries, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(queries) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No questions answered yet.")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ASKED\tQUESTION\tANSWER")
	for _, q := range queries {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			formatTime(q.CreatedAt),
			truncate(q.Question, 50),
			truncate(q.Answer, 60))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}
