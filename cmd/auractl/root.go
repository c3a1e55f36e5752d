package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/randomtoy/auradream/internal/app"
	"github.com/randomtoy/auradream/internal/bootstrap"
	"github.com/randomtoy/auradream/internal/config"
)

type stdSeeds struct{}

func (stdSeeds) Seed() uint64 { return rand.Uint64() }

func newRootCmd() *cobra.Command {
	var offline bool

	root := &cobra.Command{
		Use:           "auractl",
		Short:         "Turn dream descriptions into emotion charts and aura posters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&offline, "offline", false, "skip the hosted model and use the rule-based analyzer")

	env := func(ctx context.Context) (*environment, error) {
		return newEnvironment(ctx, offline)
	}
	root.AddCommand(
		newAnalyzeCmd(env),
		newPosterCmd(),
		newHistoryCmd(env),
	)
	return root
}

// environment is the wired service plus whatever needs closing afterwards.
type environment struct {
	svc   *app.DreamService
	close func()
}

func newEnvironment(ctx context.Context, offline bool) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	analyzer, err := bootstrap.NewAnalyzer(cfg, offline, logger)
	if err != nil {
		return nil, err
	}
	dreams, closeJournal, err := bootstrap.OpenJournal(ctx, cfg)
	if err != nil {
		return nil, err
	}

	env := &environment{close: func() { _ = closeJournal() }}
	env.svc = app.NewDreamService(analyzer, dreams, stdSeeds{}, logger)
	return env, nil
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
