// internal/api/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"wfl-bus-finder-api-server/internal/auth"
	"wfl-bus-finder-api-server/internal/logging"
	"wfl-bus-finder-api-server/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireRole.
const (
	ContextUsername = "auth_username"
	ContextRole     = "auth_role"
)

// BasicRealm is sent in the WWW-Authenticate challenge on every 401.
const BasicRealm = `Basic realm="WFL Bus Finder", charset="UTF-8"`

// RequireRole authenticates the request with HTTP Basic credentials or a
// Bearer session token and rejects callers below min.
func RequireRole(verifier *auth.Verifier, min auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, role, err := authenticate(c, verifier, min)
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrForbidden):
			metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
			logging.Ctx(c.Request.Context()).Warn().
				Str("username", username).Str("role", role.String()).Str("required", min.String()).
				Str("path", c.Request.URL.Path).Msg("Insufficient privileges")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Superadmin privileges required"})
			return
		default:
			metrics.AuthFailuresTotal.WithLabelValues("unauthorized").Inc()
			logging.Ctx(c.Request.Context()).Warn().
				Str("path", c.Request.URL.Path).Msg("Rejected admin credentials")
			c.Header("WWW-Authenticate", BasicRealm)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication credentials"})
			return
		}

		c.Set(ContextUsername, username)
		c.Set(ContextRole, role)
		c.Next()
	}
}

func authenticate(c *gin.Context, verifier *auth.Verifier, min auth.Role) (string, auth.Role, error) {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		username, role, err := verifier.ParseToken(strings.TrimSpace(token))
		if err != nil {
			return "", auth.RoleNone, err
		}
		if !role.AtLeast(min) {
			return username, role, auth.ErrForbidden
		}
		return username, role, nil
	}

	username, password, ok := c.Request.BasicAuth()
	if !ok {
		return "", auth.RoleNone, auth.ErrUnauthorized
	}
	role, err := verifier.Authorize(username, password, min)
	return username, role, err
}

// RoleFromContext returns the role RequireRole stored, or RoleNone.
func RoleFromContext(c *gin.Context) auth.Role {
	if v, ok := c.Get(ContextRole); ok {
		if role, ok := v.(auth.Role); ok {
			return role
		}
	}
	return auth.RoleNone
}
