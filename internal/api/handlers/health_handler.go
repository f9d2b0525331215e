// internal/api/handlers/health_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"wfl-bus-finder-api-server/internal/database"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	Store database.BusStore
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
