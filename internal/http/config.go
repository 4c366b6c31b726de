package http

import (
	"github.com/mrlokans/orgauth/internal/auth"
	"github.com/mrlokans/orgauth/internal/database"
	"github.com/mrlokans/orgauth/internal/metrics"
)

// RouterConfig contains all dependencies needed to build the HTTP router.
type RouterConfig struct {
	// Core dependencies
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	Database       *database.Database

	// Optional: nil disables /metrics and request instrumentation
	Metrics *metrics.Metrics

	// Optional: both nil disables the /api/tasks routes
	TaskQueue   TaskQueue
	Maintenance MaintenanceTrigger

	CORSOrigins []string

	// Refuse writes with 503 while true
	ReadOnly bool

	// Application info
	ProjectName string
	Version     string
}
