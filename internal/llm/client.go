// ABOUTME: OpenAI client wrapping embeddings and chat completions with retry
// ABOUTME: Embeddings are memoized in a bounded LRU; the backend is injectable for tests
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/mahiti-ai/mahiti/internal/util"
)

const (
	// DefaultChatModel answers questions about the retrieved documents
	DefaultChatModel = "gpt-4o"
	// DefaultEmbeddingModel produces 1536-dimensional vectors
	DefaultEmbeddingModel = openai.AdaEmbeddingV2

	// EmbeddingDimension is fixed by the embedding model family
	EmbeddingDimension = 1536

	// embedCacheSize bounds the memoization cache; least-recently-used
	// entries are evicted once full, so callers must not assume a hit
	embedCacheSize = 1000
)

// ErrEmbeddingUnavailable reports an embedding backend that stayed down
// across the whole retry budget. It carries the last underlying error and
// is fatal to the operation that requested the embedding.
var ErrEmbeddingUnavailable = errors.New("embedding backend unavailable")

// backend is the slice of the OpenAI API the client uses. Tests substitute
// a fake; production passes *openai.Client.
type backend interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	MaxAttempts    int
	BaseDelay      time.Duration
	Timeout        time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		MaxAttempts:    3,
		BaseDelay:      time.Second,
		Timeout:        30 * time.Second,
	}
}

// Client wraps the OpenAI API with retry, per-attempt timeouts, and
// embedding memoization.
type Client struct {
	api            backend
	chatModel      string
	embeddingModel openai.EmbeddingModel
	dimension      int
	maxAttempts    int
	baseDelay      time.Duration
	timeout        time.Duration
	sleep          util.Sleeper
	cache          *lru.Cache[string, []float64]
}

// NewClient creates a client with the given API key and default configuration
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a client with custom configuration
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	cache, err := lru.New[string, []float64](embedCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating embedding cache: %w", err)
	}

	return &Client{
		api:            openai.NewClient(config.APIKey),
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		dimension:      EmbeddingDimension,
		maxAttempts:    config.MaxAttempts,
		baseDelay:      config.BaseDelay,
		timeout:        config.Timeout,
		sleep:          time.Sleep,
		cache:          cache,
	}, nil
}

// Embed returns the embedding vector for text. Identical text hits the
// cache and issues no outbound call. Provider failures are retried up to
// the attempt budget with the fixed backoff schedule; exhaustion returns
// ErrEmbeddingUnavailable wrapping the last error. The cache is only
// written after a successful call, so a failure leaves no partial state.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if vec, ok := c.cache.Get(text); ok {
		return cloneVector(vec), nil
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			c.sleep(util.Backoff(c.baseDelay, attempt-1))
		}

		vec, err := c.embedOnce(ctx, text)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
			continue
		}

		c.cache.Add(text, vec)
		return cloneVector(vec), nil
	}

	return nil, fmt.Errorf("%w: %d attempts: %w", ErrEmbeddingUnavailable, c.maxAttempts, lastErr)
}

// cloneVector copies a memoized vector so callers never alias the cache entry.
func cloneVector(vec []float64) []float64 {
	out := make([]float64, len(vec))
	copy(out, vec)
	return out
}

func (c *Client) embedOnce(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: c.embeddingModel,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	raw := resp.Data[0].Embedding
	if len(raw) != c.dimension {
		return nil, fmt.Errorf("unexpected embedding dimension: expected %d, got %d", c.dimension, len(raw))
	}

	vec := make([]float64, len(raw))
	for i, v := range raw {
		vec[i] = float64(v)
	}
	return vec, nil
}

// Complete runs one chat completion with the given system and user prompts.
// Same retry budget and backoff as Embed; exhaustion returns the last
// error to the caller, which decides the degradation policy.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			c.sleep(util.Backoff(c.baseDelay, attempt-1))
		}

		answer, err := c.completeOnce(ctx, systemPrompt, userPrompt, temperature, maxTokens)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
			continue
		}
		return answer, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *Client) completeOnce(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
