// function.go

// Package busfinder is the Cloud Functions entry point. The function is
// registered as "handler" and shares the application with cmd/api.
package busfinder

import (
	"context"
	"net/http"
	"sync"

	"wfl-bus-finder-api-server/config"
	"wfl-bus-finder-api-server/internal/app"
	"wfl-bus-finder-api-server/internal/logging"
	"wfl-bus-finder-api-server/internal/platform"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

var (
	once    sync.Once
	handler http.Handler
	initErr error
)

func init() {
	functions.HTTP("handler", Handler)
}

// load builds the app on first use so cold starts only pay for it once.
func load() (http.Handler, error) {
	once.Do(func() {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			initErr = err
			return
		}
		// Instances scale independently, so tokens need one shared key.
		if initErr = cfg.RequireSharedSecret(); initErr != nil {
			return
		}
		a, err := app.Build(context.Background(), cfg)
		if err != nil {
			initErr = err
			return
		}
		handler = platform.HTTPFunction(a.Handler)
	})
	return handler, initErr
}

// Handler serves one request per invocation.
func Handler(w http.ResponseWriter, r *http.Request) {
	h, err := load()
	if err != nil {
		logging.Error().Err(err).Msg("Function initialization failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}
	h.ServeHTTP(w, r)
}
