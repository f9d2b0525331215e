// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"wfl-bus-finder-api-server/config"
	"wfl-bus-finder-api-server/internal/app"
	"wfl-bus-finder-api-server/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load .env (optional) and configuration
	_ = godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		logging.Fatal().Err(err).Msg("Could not load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Wire store, auth and router
	application, err := app.Build(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close(context.Background())

	// 3. Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           application.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.Info().Str("port", cfg.Server.Port).Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Failed to run server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
