package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/orgauth/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service,omitempty"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	service string
	version string
}

func NewHealthController(db *database.Database, service, version string) *HealthController {
	return &HealthController{
		db:      db,
		service: service,
		version: version,
	}
}

// Status handles GET /health.
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:  status,
		Service: h.service,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	})
}

// Ping handles GET /ping.
func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
