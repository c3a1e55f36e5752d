package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderNone       = "none"
)

type Config struct {
	HTTPAddr          string
	LogLevel          slog.Level
	LLMProvider       string
	LLMModel          string
	LLMFallbackModels []string
	LLMMaxTokens      int
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	LLMTimeout        time.Duration
	JournalPath       string
}

// RemoteAnalysis reports whether the hosted model should be tried before
// the keyword model. It needs both a provider and a credential.
func (c Config) RemoteAnalysis() bool {
	return c.LLMProvider == ProviderOpenRouter && c.OpenRouterAPIKey != ""
}

func Load() (Config, error) {
	c := Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		LLMProvider:       strings.ToLower(envOr("LLM_PROVIDER", ProviderOpenRouter)),
		LLMModel:          envOr("LLM_MODEL", "openai/gpt-4.1-mini"),
		OpenRouterAPIKey:  envOr("OPENROUTER_API_KEY", os.Getenv("OPENAI_API_KEY")),
		OpenRouterBaseURL: envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		LLMFallbackModels: parseFallbackModels(os.Getenv("LLM_FALLBACK_MODELS")),
		LLMMaxTokens:      600,
		LLMTimeout:        20 * time.Second,
		JournalPath:       os.Getenv("JOURNAL_PATH"),
	}

	switch c.LLMProvider {
	case ProviderOpenRouter, ProviderNone:
	default:
		return Config{}, fmt.Errorf("invalid LLM_PROVIDER %q", c.LLMProvider)
	}

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		c.LLMTimeout = d
	}

	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid LLM_MAX_TOKENS %q", v)
		}
		c.LLMMaxTokens = n
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseFallbackModels(s string) []string {
	if s == "" {
		return nil
	}
	var models []string
	for _, m := range strings.Split(s, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			models = append(models, m)
		}
	}
	return models
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
