// internal/api/handlers/bus_handler.go
package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"wfl-bus-finder-api-server/internal/database"
	"wfl-bus-finder-api-server/internal/logging"
	"wfl-bus-finder-api-server/internal/metrics"
	"wfl-bus-finder-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

// Broadcaster pushes events to live map clients.
type Broadcaster interface {
	Broadcast(v any) error
}

type BusHandler struct {
	Store database.BusStore
	Hub   Broadcaster // optional
}

// Wfl lists every bus, or records a report when busNumber is present.
func (h *BusHandler) Wfl(c *gin.Context) {
	busNumber := c.Query("busNumber")
	if strings.TrimSpace(busNumber) == "" {
		h.listBuses(c)
		return
	}
	h.reportBus(c, busNumber)
}

func (h *BusHandler) listBuses(c *gin.Context) {
	ctx := c.Request.Context()
	buses, err := h.Store.ListAll(ctx)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("list").Inc()
		internalError(c, err, "Error listing buses")
		return
	}
	if buses == nil {
		buses = []models.Bus{}
	}
	c.JSON(http.StatusOK, buses)
}

func (h *BusHandler) reportBus(c *gin.Context, busNumber string) {
	ctx := c.Request.Context()
	bus := busFromQuery(c, busNumber)

	if err := h.Store.Upsert(ctx, bus); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues("upsert").Inc()
		internalError(c, err, "Error saving bus")
		return
	}
	metrics.BusReportsTotal.Inc()
	logging.Ctx(ctx).Info().Str("bus", busNumber).Str("main_street", bus.MainStreet).Msg("Updated bus")

	h.broadcast(ctx, models.BusEvent{Type: models.EventBusReported, Bus: &bus})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Bus %s location saved", busNumber),
	})
}

func (h *BusHandler) broadcast(ctx context.Context, ev models.BusEvent) {
	if h.Hub == nil {
		return
	}
	if err := h.Hub.Broadcast(ev); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("event", ev.Type).Msg("Broadcast failed")
	}
}

// busFromQuery builds the sparse record. Blank, "null" and unparseable values
// are dropped rather than rejected.
func busFromQuery(c *gin.Context, busNumber string) models.Bus {
	return models.Bus{
		BusNumber:            busNumber,
		MainStreet:           queryField(c, "main_street", "mainStreet"),
		PrimaryCrossStreet:   queryField(c, "primary_cross_street", "primaryCrossStreet"),
		SecondaryCrossStreet: queryField(c, "secondary_cross_street", "secondaryCrossStreet"),
		Latitude:             queryCoordinate(c, 90, "latitude", "lat"),
		Longitude:            queryCoordinate(c, 180, "longitude", "lng"),
		City:                 queryField(c, "city"),
	}
}

// queryField returns the first non-empty value among names.
func queryField(c *gin.Context, names ...string) string {
	for _, name := range names {
		v := strings.TrimSpace(c.Query(name))
		if v != "" && v != "null" {
			return v
		}
	}
	return ""
}

func queryCoordinate(c *gin.Context, limit float64, names ...string) *float64 {
	raw := queryField(c, names...)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
		return nil
	}
	return &v
}

// internalError logs the full error and answers with the generic envelope.
func internalError(c *gin.Context, err error, msg string) {
	logging.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": err.Error(),
	})
}
