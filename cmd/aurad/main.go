package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	httpadapter "github.com/randomtoy/auradream/internal/adapters/http"
	"github.com/randomtoy/auradream/internal/app"
	"github.com/randomtoy/auradream/internal/bootstrap"
	"github.com/randomtoy/auradream/internal/config"
)

// stdSeeds delegates to math/rand/v2 (auto-seeded).
type stdSeeds struct{}

func (stdSeeds) Seed() uint64 { return rand.Uint64() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, err := bootstrap.NewAnalyzer(cfg, false, logger)
	if err != nil {
		logger.Error("failed to build analyzer", "error", err)
		os.Exit(1)
	}

	dreams, closeJournal, err := bootstrap.OpenJournal(ctx, cfg)
	if err != nil {
		logger.Error("failed to open journal", "error", err)
		os.Exit(1)
	}
	defer closeJournal()

	svc := app.NewDreamService(analyzer, dreams, stdSeeds{}, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc)
	handler.Register(e)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
