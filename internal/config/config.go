package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Fixed retrieval parameters. These are tuned together: the chunk size targets
// the context window of the MiniLM embedding model, and the strict answering
// prompt in the rag package assumes TopK passages of roughly this size.
const (
	// ChunkSize is the maximum passage length in runes.
	ChunkSize = 500
	// ChunkOverlap is the number of runes shared between consecutive passages.
	ChunkOverlap = 50
	// TopK is the number of passages retrieved per question.
	TopK = 3
	// VectorSize is the embedding dimension (all-MiniLM-L6-v2 output size).
	VectorSize = 384
	// SimilarityThreshold is declared for parity with the retrieval design but
	// is not applied as a cutoff; all top-K results are accepted regardless of
	// score.
	SimilarityThreshold = 0.75
)

// Config holds all configuration for the application.
type Config struct {
	GroqAPIKey         string
	GroqBaseURL        string
	LLMModelName       string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	QdrantURL          string
	APIPort            string
	LogLevel           slog.Level
	LogFormat          string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Try to find project root by walking up from the working directory.
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:        getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMModelName:       getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "sentence-transformers/all-MiniLM-L6-v2"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		APIPort:            getEnv("API_PORT", "8000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// parseLogLevel converts a level name to a slog.Level.
func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	return level, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
