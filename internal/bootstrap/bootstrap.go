// Package bootstrap wires the adapters both binaries share.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/randomtoy/auradream/internal/adapters/heuristic"
	"github.com/randomtoy/auradream/internal/adapters/journal"
	"github.com/randomtoy/auradream/internal/adapters/llm/openrouter"
	"github.com/randomtoy/auradream/internal/app"
	"github.com/randomtoy/auradream/internal/config"
	"github.com/randomtoy/auradream/internal/ports"
)

// NewAnalyzer builds the keyword model, fronted by the hosted model when
// cfg has credentials and offline is false.
func NewAnalyzer(cfg config.Config, offline bool, logger *slog.Logger) (ports.Analyzer, error) {
	lexicon, err := heuristic.EmbeddedLexicon()
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	var remote ports.Analyzer
	switch {
	case offline:
	case !cfg.RemoteAnalysis():
		logger.Warn("no LLM credentials, using the rule-based model only")
	default:
		remote = openrouter.NewClient(
			&http.Client{Timeout: cfg.LLMTimeout},
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBaseURL,
			cfg.LLMModel,
			logger,
			openrouter.WithFallbackModels(cfg.LLMFallbackModels...),
			openrouter.WithMaxTokens(cfg.LLMMaxTokens),
		)
		logger.Info("remote analysis enabled", "model", cfg.LLMModel)
	}
	return app.NewAnalyzer(remote, heuristic.NewAnalyzer(lexicon), logger), nil
}

// OpenJournal opens the dream journal at cfg.JournalPath. An empty path
// yields a nil journal and a no-op close.
func OpenJournal(ctx context.Context, cfg config.Config) (ports.Journal, func() error, error) {
	if cfg.JournalPath == "" {
		return nil, func() error { return nil }, nil
	}
	store, err := journal.Open(ctx, cfg.JournalPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal %s: %w", cfg.JournalPath, err)
	}
	return store, store.Close, nil
}
