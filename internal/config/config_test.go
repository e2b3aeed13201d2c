package config

import (
	"log/slog"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GROQ_API_KEY", "gsk_test")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GroqAPIKey != "gsk_test" {
		t.Errorf("GroqAPIKey = %q, want %q", cfg.GroqAPIKey, "gsk_test")
	}
	if cfg.GroqBaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("GroqBaseURL = %q", cfg.GroqBaseURL)
	}
	if cfg.LLMModelName != "llama-3.3-70b-versatile" {
		t.Errorf("LLMModelName = %q", cfg.LLMModelName)
	}
	if cfg.EmbeddingModelName != "sentence-transformers/all-MiniLM-L6-v2" {
		t.Errorf("EmbeddingModelName = %q", cfg.EmbeddingModelName)
	}
	if cfg.QdrantURL != "http://localhost:6333" {
		t.Errorf("QdrantURL = %q", cfg.QdrantURL)
	}
	if cfg.APIPort != "8000" {
		t.Errorf("APIPort = %q, want %q", cfg.APIPort, "8000")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LLM_MODEL", "llama-3.1-8b-instant")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q, want %q", cfg.APIPort, "9000")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelDebug)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
	if cfg.LLMModelName != "llama-3.1-8b-instant" {
		t.Errorf("LLMModelName = %q", cfg.LLMModelName)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when GROQ_API_KEY is missing")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid LOG_LEVEL")
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOG_FORMAT", "xml")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid LOG_FORMAT")
	}
}
