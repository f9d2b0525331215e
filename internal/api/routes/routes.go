// internal/api/routes/routes.go
package routes

import (
	"net/http"
	"time"

	"wfl-bus-finder-api-server/config"
	"wfl-bus-finder-api-server/internal/api/handlers"
	"wfl-bus-finder-api-server/internal/api/middleware"
	"wfl-bus-finder-api-server/internal/auth"
	"wfl-bus-finder-api-server/internal/database"
	"wfl-bus-finder-api-server/internal/socket"
	"wfl-bus-finder-api-server/internal/streets"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires every handler to its dependencies. archiver may be nil.
func SetupRouter(
	cfg config.Config,
	store database.BusStore,
	verifier *auth.Verifier,
	table *streets.Table,
	wsHub *socket.Hub,
	archiver handlers.SnapshotArchiver,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.PrometheusMetrics())
	// Mobile clients and the map page are served from other origins.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:   []string{middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	// Handlers
	busHandler := &handlers.BusHandler{Store: store, Hub: wsHub}
	streetHandler := &handlers.StreetHandler{Table: table}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Store: store}
	healthHandler := &handlers.HealthHandler{Store: store}
	spaHandler := &handlers.SPAHandler{StaticDir: cfg.Server.StaticDir}
	adminHandler := &handlers.AdminHandler{
		Store:      store,
		Verifier:   verifier,
		Hub:        wsHub,
		Archiver:   archiver,
		MapsAPIKey: cfg.Maps.GoogleAPIKey,
	}

	// === Public routes ===
	router.GET("/", spaHandler.Root)
	router.GET("/streets", streetHandler.GetStreets)
	router.GET("/wfl", busHandler.Wfl)
	router.GET("/wfl/ws", webSocketHandler.ServeWs)
	router.GET("/healthz", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if dir, ok := spaHandler.AssetsDir(); ok {
		router.Static("/assets", dir)
	}

	// === Admin routes ===
	requireAdmin := middleware.RequireRole(verifier, auth.RoleAdmin)
	requireSuperadmin := middleware.RequireRole(verifier, auth.RoleSuperadmin)

	admin := router.Group("/admin")
	{
		admin.GET("", requireAdmin, adminHandler.Page)
		admin.GET("/index.html", requireAdmin, adminHandler.Page)
		admin.GET("/verify", requireAdmin, adminHandler.Verify)
		// Unauthenticated for existing clients; the key is referrer-restricted upstream.
		admin.GET("/google-maps-api-key", adminHandler.GoogleMapsAPIKey)
		admin.DELETE("/delete-all-buses", requireSuperadmin, adminHandler.DeleteAllBuses)
	}

	router.NoRoute(spaHandler.NotFound)

	return router
}
