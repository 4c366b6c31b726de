package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/orgauth/internal/auth"
	"github.com/mrlokans/orgauth/internal/ids"
	"github.com/mrlokans/orgauth/internal/readonly"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	useWireFieldNames()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(ids.RequestID())

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
	}

	router.Use(auth.CORSMiddleware(cfg.CORSOrigins))
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.StrictTransportSecurityMiddleware())
	router.Use(readonly.NewMiddleware(cfg.ReadOnly).Handler())

	health := NewHealthController(cfg.Database, cfg.ProjectName, cfg.Version)
	authController := NewAuthController(cfg.AuthService)
	users := NewUsersController(cfg.AuthService)
	organisations := NewOrganisationsController(cfg.AuthService)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Public auth endpoints
	router.POST("/auth/register", authController.Register)
	router.POST("/auth/login", authController.Login)
	router.POST("/api/token", authController.Token)

	// Everything below requires a bearer token
	api := router.Group("/api", cfg.AuthMiddleware.RequireAuth())

	api.GET("/user", users.Me)
	api.GET("/users/:id", users.GetByID)

	api.POST("/organisations", organisations.Create)
	api.GET("/organisations", organisations.List)
	api.GET("/organisation/:orgId", organisations.Get)
	api.POST("/organisation/:orgId/users", organisations.AddUser)
	api.GET("/organisation/:orgId/users", organisations.ListUsers)

	if cfg.TaskQueue != nil && cfg.Maintenance != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.Maintenance)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
