// internal/api/handlers/spa_handler.go
package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// apiPrefixes never fall through to the single-page app.
var apiPrefixes = []string{"/wfl", "/streets", "/admin/verify", "/admin/google-maps-api-key", "/admin/delete-all-buses", "/healthz", "/metrics"}

type SPAHandler struct {
	// StaticDir holds the built frontend (index.html plus assets/).
	StaticDir string
}

func (h *SPAHandler) indexPath() (string, bool) {
	if h.StaticDir == "" {
		return "", false
	}
	p := filepath.Join(h.StaticDir, "index.html")
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	return p, true
}

// AssetsDir returns the assets directory if the frontend was built.
func (h *SPAHandler) AssetsDir() (string, bool) {
	if h.StaticDir == "" {
		return "", false
	}
	p := filepath.Join(h.StaticDir, "assets")
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return p, true
}

// Root serves the app shell, or a short API description when there is none.
func (h *SPAHandler) Root(c *gin.Context) {
	if p, ok := h.indexPath(); ok {
		c.File(p)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "WFL Bus Finder API",
		"endpoints": gin.H{
			"/wfl":     "Get all buses or create/update a bus",
			"/streets": "Street data for the report form",
			"/admin":   "Admin interface",
		},
	})
}

// NotFound is the catch-all: GETs outside the API get the app shell so
// client-side routes like /admin/input work, everything else is a 404.
func (h *SPAHandler) NotFound(c *gin.Context) {
	if c.Request.Method == http.MethodGet && !isAPIPath(c.Request.URL.Path) {
		if p, ok := h.indexPath(); ok {
			c.File(p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

func isAPIPath(path string) bool {
	for _, prefix := range apiPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
