// internal/api/handlers/admin_handler.go
package handlers

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"wfl-bus-finder-api-server/internal/api/middleware"
	"wfl-bus-finder-api-server/internal/auth"
	"wfl-bus-finder-api-server/internal/database"
	"wfl-bus-finder-api-server/internal/logging"
	"wfl-bus-finder-api-server/internal/metrics"
	"wfl-bus-finder-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

//go:embed web/admin.html
var adminPage []byte

// SnapshotArchiver stores a copy of the buses before a bulk delete.
type SnapshotArchiver interface {
	ArchiveBuses(ctx context.Context, reason string, buses []models.Bus) (string, error)
}

type AdminHandler struct {
	Store      database.BusStore
	Verifier   *auth.Verifier
	Hub        Broadcaster      // optional
	Archiver   SnapshotArchiver // optional
	MapsAPIKey string
}

// Page serves the embedded admin console.
func (h *AdminHandler) Page(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", adminPage)
}

// Verify confirms the caller's credentials and hands out a session token.
func (h *AdminHandler) Verify(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)
	role := middleware.RoleFromContext(c)

	token, err := h.Verifier.IssueToken(username, role)
	if err != nil {
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("Failed to issue admin token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"authenticated": true,
		"username":      username,
		"isSuperadmin":  role == auth.RoleSuperadmin,
		"token":         token,
	})
}

// GoogleMapsAPIKey returns the configured browser key.
// NOTE: unauthenticated, same as the legacy service; the key must be
// restricted by HTTP referrer on the provider side.
func (h *AdminHandler) GoogleMapsAPIKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"apiKey": h.MapsAPIKey})
}

// DeleteAllBuses wipes the Bus collection, archiving it first if configured.
func (h *AdminHandler) DeleteAllBuses(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.GetString(middleware.ContextUsername)

	if h.Archiver != nil {
		buses, err := h.Store.ListAll(ctx)
		if err != nil {
			metrics.StoreErrorsTotal.WithLabelValues("list").Inc()
			internalError(c, err, "Error reading buses for snapshot")
			return
		}
		url, err := h.Archiver.ArchiveBuses(ctx, "delete-all by "+username, buses)
		if err != nil {
			internalError(c, err, "Error archiving buses")
			return
		}
		logging.Ctx(ctx).Info().Str("snapshot", url).Int("count", len(buses)).Msg("Archived buses before delete")
	}

	deleted, err := h.Store.DeleteAll(ctx)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("delete_all").Inc()
		internalError(c, err, "Error deleting buses")
		return
	}
	metrics.BusesDeletedTotal.Add(float64(deleted))
	logging.Ctx(ctx).Warn().Str("username", username).Int64("deleted", deleted).Msg("Deleted all buses")

	if h.Hub != nil {
		if err := h.Hub.Broadcast(models.BusEvent{Type: models.EventBusesCleared, Deleted: deleted}); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Broadcast failed")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Deleted %d bus records", deleted),
		"deleted": deleted,
	})
}
