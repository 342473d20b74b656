// ABOUTME: Centralized configuration for the mahiti document Q&A system
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mahiti-ai/mahiti/internal/storage/sqlite"
)

// Config holds all configuration for the system
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxAttempts    int
	RetryBaseDelay time.Duration

	// Retrieval settings
	TopK int

	// Storage settings
	DataDir string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("MAHITI_CHAT_MODEL", "gpt-4o"),
		EmbeddingModel: getEnv("MAHITI_EMBEDDING_MODEL", "text-embedding-ada-002"),
		Timeout:        getEnvDuration("MAHITI_OPENAI_TIMEOUT", 30*time.Second),
		MaxAttempts:    getEnvInt("MAHITI_MAX_ATTEMPTS", 3),
		RetryBaseDelay: getEnvDuration("MAHITI_RETRY_DELAY", time.Second),
		TopK:           getEnvInt("MAHITI_TOP_K", 3),
		DataDir:        getEnv("MAHITI_DATA_DIR", sqlite.DefaultDataDir()),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("MAHITI_TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxAttempts < 1 || c.MaxAttempts > 10 {
		return fmt.Errorf("MAHITI_MAX_ATTEMPTS must be 1-10, got %d", c.MaxAttempts)
	}
	if c.RetryBaseDelay < 0 {
		return fmt.Errorf("MAHITI_RETRY_DELAY must not be negative, got %v", c.RetryBaseDelay)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
