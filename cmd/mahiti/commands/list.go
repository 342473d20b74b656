// ABOUTME: CLI command to list ingested documents
// ABOUTME: Prints a tabwriter table with title, path, position, and age
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ingested documents",
		Long: `List all documents in the corpus, newest first.

Examples:
  mahiti list
  mahiti list --format json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	docs, err := a.store.Documents().List()
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding documents: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(docs) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents ingested yet. Use 'mahiti ingest' to add some.")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tPATH\tPOSITION\tINGESTED")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			truncate(doc.Title, 40),
			truncate(doc.SourcePath, 50),
			doc.VectorPosition,
			formatTime(doc.CreatedAt))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d document(s)\n", len(docs))
	}
	return nil
}
