package app_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/randomtoy/auradream/internal/app"
	"github.com/randomtoy/auradream/internal/domain"
)

func TestNewAnalyzer_NoRemoteUsesLocal(t *testing.T) {
	local := &mockAnalyzer{out: domain.Analysis{Source: domain.SourceHeuristic}}
	an := app.NewAnalyzer(nil, local, slog.Default())

	out, err := an.Analyze(context.Background(), "dream")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Source != domain.SourceHeuristic || local.calls != 1 {
		t.Errorf("expected local analysis, got %+v", out)
	}
}

func TestFallbackAnalyzer_RemoteSuccess(t *testing.T) {
	remote := &mockAnalyzer{out: domain.Analysis{Source: domain.SourceLLM}}
	local := &mockAnalyzer{}
	an := app.NewAnalyzer(remote, local, slog.Default())

	out, err := an.Analyze(context.Background(), "dream")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Source != domain.SourceLLM {
		t.Errorf("expected remote analysis, got %s", out.Source)
	}
	if local.calls != 0 {
		t.Errorf("local analyzer should not run, ran %d times", local.calls)
	}
}

func TestFallbackAnalyzer_AbsorbsRemoteFailure(t *testing.T) {
	for _, remoteErr := range []error{domain.ErrUpstreamLLM, domain.ErrInvalidLLMJSON, context.DeadlineExceeded} {
		remote := &mockAnalyzer{err: remoteErr}
		local := &mockAnalyzer{out: domain.Analysis{Source: domain.SourceHeuristic}}
		an := app.NewAnalyzer(remote, local, slog.Default())

		out, err := an.Analyze(context.Background(), "dream")
		if err != nil {
			t.Fatalf("%v: failure must be absorbed, got %v", remoteErr, err)
		}
		if out.Source != domain.SourceHeuristic {
			t.Errorf("%v: expected heuristic fallback, got %s", remoteErr, out.Source)
		}
		if errors.Is(err, remoteErr) {
			t.Errorf("%v leaked to the caller", remoteErr)
		}
	}
}
