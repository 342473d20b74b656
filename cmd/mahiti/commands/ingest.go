// ABOUTME: CLI command to ingest PDF documents into the corpus
// ABOUTME: Validates extensions, reads files, and reports per-document outcomes
package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file.pdf> [file.pdf...]",
		Short: "Ingest PDF documents into the corpus",
		Long: `Ingest one or more Marathi government PDF documents.

Each document is converted to text, embedded, added to the vector
index, and persisted. Re-ingesting an already-known path is a no-op.

Examples:
  mahiti ingest shasan-nirnay.pdf
  mahiti ingest docs/*.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	for _, path := range args {
		if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
			return fmt.Errorf("only PDF files are allowed: %s", path)
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.requireService(); err != nil {
		return err
	}

	ctx := context.Background()
	var failures int
	for _, path := range args {
		raw, err := os.ReadFile(path)
		if err != nil {
			// Per-document isolation: one unreadable file must not
			// abort the rest of the batch
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: reading %s: %v\n", path, err)
			failures++
			continue
		}

		result, err := a.service.Ingest(ctx, path, raw)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: ingesting %s: %v\n", path, err)
			failures++
			continue
		}

		if result.Skipped {
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s (already ingested)\n", path)
			}
			continue
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Ingested %s (position %d)\n",
				result.Document.Title, result.Document.VectorPosition)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d document(s) failed", failures, len(args))
	}
	return nil
}
