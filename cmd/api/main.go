package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"summary-backend/internal/bootstrap"
	"summary-backend/internal/shared/config"
	"summary-backend/internal/shared/server"
	"summary-backend/internal/shared/telemetry"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("startup.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := server.Addr(cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		// Summarize blocks on the provider, so writes must outlive its timeout.
		WriteTimeout: cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("server.start", map[string]any{
			"addr": addr,
			"url":  "http://localhost" + addr,
			"env":  cfg.Env,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			telemetry.Error("server.error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	case <-ctx.Done():
		telemetry.Info("server.shutdown", map[string]any{"addr": addr})
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			telemetry.Error("server.shutdown_failed", map[string]any{"error": err.Error()})
		}
	}
}
