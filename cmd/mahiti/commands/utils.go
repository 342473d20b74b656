// ABOUTME: Shared utility functions and process wiring for CLI commands
// ABOUTME: Builds the storage, index, client, and service once per invocation
package commands

import (
	"fmt"
	"path/filepath"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mahiti-ai/mahiti/internal/config"
	"github.com/mahiti-ai/mahiti/internal/extract"
	"github.com/mahiti-ai/mahiti/internal/index"
	"github.com/mahiti-ai/mahiti/internal/llm"
	"github.com/mahiti-ai/mahiti/internal/rag"
	"github.com/mahiti-ai/mahiti/internal/storage/sqlite"
)

// app bundles the process-wide state shared by the commands. The vector
// index starts empty on every process start; documents ingested in earlier
// processes keep their records but are not searchable until re-ingested
// into a fresh index (known limitation of the in-memory index).
//
// service is nil when no OpenAI API key is configured; commands that only
// read the store (list, history) still work without one.
type app struct {
	cfg     *config.Config
	store   *sqlite.Storage
	index   *index.Index
	service *rag.Service
}

// newApp loads configuration and wires the whole pipeline
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	store, err := sqlite.OpenStorage(filepath.Join(cfg.DataDir, "mahiti.db"))
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	a := &app{cfg: cfg, store: store}

	if cfg.OpenAIKey == "" {
		return a, nil
	}

	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		MaxAttempts:    cfg.MaxAttempts,
		BaseDelay:      cfg.RetryBaseDelay,
		Timeout:        cfg.Timeout,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	// Positions below next belong to documents persisted by earlier
	// processes; seeding the index there keeps new appends unique
	next, err := store.Documents().NextVectorPosition()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("seeding vector index: %w", err)
	}

	ix := index.NewAt(llm.EmbeddingDimension, next)
	ingestor := rag.NewIngestor(extract.PDF, client, ix, store.Documents())
	retriever := rag.NewRetriever(client, ix, store.Documents())
	generator := rag.NewGenerator(client)

	a.index = ix
	a.service = rag.NewService(ingestor, retriever, generator, store.Queries(), cfg.TopK)
	return a, nil
}

// requireService returns an error when the OpenAI-backed pipeline is not
// available (no API key configured)
func (a *app) requireService() error {
	if a.service == nil {
		return fmt.Errorf("OPENAI_API_KEY is not set; it is required for this command")
	}
	return nil
}

// Close releases the app's resources
func (a *app) Close() error {
	return a.store.Close()
}

// truncate shortens a string to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
