// Package readonly implements a maintenance switch that keeps the service
// answering reads and logins while refusing writes.
package readonly

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Message is returned to clients whose write was refused.
const Message = "Service is in read-only mode"

// ContextKeyReadOnly is set on every request with the current mode.
const ContextKeyReadOnly = "read_only"

// Paths that accept POST in read-only mode. Logging in reads credentials and
// signs a token; it does not write.
var allowedPaths = map[string]bool{
	"/auth/login": true,
	"/api/token":  true,
}

type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler refuses writes with 503 while the mode is enabled.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if allowedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Header("Retry-After", "120")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"status":     "error",
			"message":    Message,
			"statusCode": http.StatusServiceUnavailable,
		})
	}
}
