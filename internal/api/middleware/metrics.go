// internal/api/middleware/metrics.go
package middleware

import (
	"strconv"
	"time"

	"wfl-bus-finder-api-server/internal/metrics"

	"github.com/gin-gonic/gin"
)

// PrometheusMetrics records request count and latency per matched route.
func PrometheusMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
