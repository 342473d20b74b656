// ABOUTME: CLI command to ask a question against the ingested corpus
// ABOUTME: Retrieves relevant chunks and prints the generated Marathi answer
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mahiti-ai/mahiti/internal/rag"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the ingested documents",
		Long: `Ask a question in Marathi (or any language) about the ingested
government documents. The answer is grounded in the most relevant
document chunks and written in Marathi.

Examples:
  mahiti ask "शासन निर्णयानुसार अनुदान किती आहे?"
  mahiti ask --top-k 5 "What does the latest GR say about pensions?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, strings.Join(args, " "), topK)
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "number of document chunks to retrieve (default from config)")

	return cmd
}

func runAsk(cmd *cobra.Command, question string, topK int) error {
	_ = godotenv.Load()

	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}
	if topK < 0 {
		return fmt.Errorf("top-k must be positive")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.requireService(); err != nil {
		return err
	}

	if topK > 0 {
		a.service.SetTopK(topK)
	}

	answer, err := a.service.Ask(context.Background(), question)
	if err != nil {
		if errors.Is(err, rag.ErrNoRelevantDocuments) {
			fmt.Fprintln(cmd.OutOrStdout(), "No relevant documents found. Ingest some documents first with 'mahiti ingest'.")
			return nil
		}
		return fmt.Errorf("answering question: %w", err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding answer: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer.Text)
	if verbose && len(answer.Sources) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nSources:")
		for _, src := range answer.Sources {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s (%s)\n", src.Title, src.SourcePath)
		}
	}
	return nil
}
