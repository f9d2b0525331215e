// internal/api/handlers/websocket_handler.go
package handlers

import (
	"net/http"
	"time"

	"wfl-bus-finder-api-server/internal/database"
	"wfl-bus-finder-api-server/internal/logging"
	"wfl-bus-finder-api-server/internal/models"
	"wfl-bus-finder-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Maximum wait for any client frame (ping or data) before the socket is dropped.
const pongWait = 60 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub   *socket.Hub
	Store database.BusStore
}

// ServeWs streams bus events. The first message is a snapshot of all buses.
// The client is registered before the snapshot is read, so a report accepted
// in between is queued behind the snapshot instead of being lost.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	ctx := c.Request.Context()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to upgrade connection")
		return
	}
	defer conn.Close()

	clientID := uuid.New().String()
	client := h.Hub.Register(clientID, conn)
	defer h.Hub.Unregister(client)

	buses, err := h.Store.ListAll(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("client", clientID).Msg("Error loading buses for websocket snapshot")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "Internal server error"),
			time.Now().Add(time.Second))
		return
	}
	if buses == nil {
		buses = []models.Bus{}
	}
	// The writer is not running yet, so this is the only writer.
	if err := conn.WriteJSON(models.BusEvent{Type: models.EventSnapshot, Buses: buses}); err != nil {
		return
	}
	go client.Run()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})

	// Read loop: only keeps the deadline fresh and notices disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Ctx(ctx).Debug().Err(err).Str("client", clientID).Msg("Unexpected close error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}
