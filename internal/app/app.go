// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"net/http"

	"wfl-bus-finder-api-server/config"
	"wfl-bus-finder-api-server/internal/api/handlers"
	"wfl-bus-finder-api-server/internal/api/routes"
	"wfl-bus-finder-api-server/internal/auth"
	"wfl-bus-finder-api-server/internal/database"
	"wfl-bus-finder-api-server/internal/logging"
	"wfl-bus-finder-api-server/internal/s3"
	"wfl-bus-finder-api-server/internal/socket"
	"wfl-bus-finder-api-server/internal/streets"

	"github.com/gin-gonic/gin"
)

// App is the fully wired service. Handler does not depend on how it is hosted.
type App struct {
	Handler http.Handler
	Store   database.BusStore

	closers []func(context.Context) error
}

// Build constructs every long-lived dependency once and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	gin.SetMode(gin.ReleaseMode)

	a := &App{}

	switch cfg.Store.Driver {
	case "memory":
		a.Store = database.NewMemoryBusStore()
		logging.Warn().Msg("Using in-memory bus store; data is lost on restart")
	default:
		client, err := database.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		a.Store = database.NewMongoBusStore(client.Database(cfg.Mongo.DBName))
		logging.Info().Str("database", cfg.Mongo.DBName).Msg("Connected to MongoDB")
	}

	if cfg.Store.SeedDemo {
		if err := database.SeedDemoBuses(ctx, a.Store); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("seed demo buses: %w", err)
		}
	}

	verifier, err := auth.NewVerifier(
		auth.Credential{Username: cfg.Auth.AdminUsername, Password: cfg.Auth.AdminPassword},
		auth.Credential{Username: cfg.Auth.SuperadminUsername, Password: cfg.Auth.SuperadminPassword},
		cfg.JWT.Secret, cfg.TokenTTL(),
	)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("build credential verifier: %w", err)
	}

	var archiver handlers.SnapshotArchiver
	if cfg.ArchiveEnabled() {
		uploader, err := s3.NewUploader(ctx, cfg.S3)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		archiver = uploader
		logging.Info().Str("bucket", cfg.S3.Bucket).Msg("Bus snapshots enabled")
	}

	a.Handler = routes.SetupRouter(cfg, a.Store, verifier, streets.SoMa, socket.NewHub(), archiver)
	return a, nil
}

// Close releases store connections.
func (a *App) Close(ctx context.Context) {
	for _, c := range a.closers {
		if err := c(ctx); err != nil {
			logging.Warn().Err(err).Msg("Error during shutdown")
		}
	}
}
