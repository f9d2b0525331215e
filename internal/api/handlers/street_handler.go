// internal/api/handlers/street_handler.go
package handlers

import (
	"net/http"

	"wfl-bus-finder-api-server/internal/streets"

	"github.com/gin-gonic/gin"
)

type StreetHandler struct {
	Table *streets.Table
}

// GetStreets returns the adjacency data the report form uses for dropdowns.
func (h *StreetHandler) GetStreets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"main_streets":            h.Table.MainStreets(),
		"cross_streets":           h.Table.CrossStreets(),
		"secondary_cross_streets": h.Table.Secondary(),
	})
}
