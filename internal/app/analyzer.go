package app

import (
	"context"
	"log/slog"

	"github.com/randomtoy/auradream/internal/domain"
	"github.com/randomtoy/auradream/internal/ports"
)

// FallbackAnalyzer answers from a local analyzer whenever the remote one
// fails, so callers only ever see a valid analysis.
type FallbackAnalyzer struct {
	remote ports.Analyzer
	local  ports.Analyzer
	logger *slog.Logger
}

// NewAnalyzer selects the analysis path. A nil remote (no credentials)
// yields the local analyzer alone.
func NewAnalyzer(remote, local ports.Analyzer, logger *slog.Logger) ports.Analyzer {
	if remote == nil {
		return local
	}
	return &FallbackAnalyzer{remote: remote, local: local, logger: logger}
}

func (a *FallbackAnalyzer) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	out, err := a.remote.Analyze(ctx, text)
	if err == nil {
		return out, nil
	}
	a.logger.WarnContext(ctx, "remote analysis failed, using local model", "error", err)
	return a.local.Analyze(ctx, text)
}
