// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for ingest, ask, list, history, mcp, and version
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
███╗   ███╗ █████╗ ██╗  ██╗██╗████████╗██╗
████╗ ████║██╔══██╗██║  ██║██║╚══██╔══╝██║
██╔████╔██║███████║███████║██║   ██║   ██║
██║╚██╔╝██║██╔══██║██╔══██║██║   ██║   ██║
██║ ╚═╝ ██║██║  ██║██║  ██║██║   ██║   ██║
╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝   ╚═╝   ╚═╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mahiti",
		Short: "Question answering over Marathi government documents",
		Long: banner + `
mahiti ingests Marathi government PDF documents, indexes their
embeddings for semantic search, and answers questions in Marathi
grounded in the retrieved document content.

Get started:
  mahiti ingest shasan-nirnay.pdf
  mahiti ask "या योजनेसाठी कोण पात्र आहे?"`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, table, json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewIngestCmd(),
		NewAskCmd(),
		NewListCmd(),
		NewHistoryCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
