// Package http provides HTTP server infrastructure including the Module
// interface that all domain modules implement for route registration.
package http

import (
	"context"

	"salon_booking_backend/platform/config"
	"salon_booking_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface so the router stays
// decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the shared route groups.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the three auth zones every module mounts into.
type RouterContext struct {
	// Engine is the root Gin engine for modules needing engine-level access.
	Engine *gin.Engine
	// Bot is the /api/v1 group guarded by the tenant bot-token middleware.
	Bot *gin.RouterGroup
	// Admin is the /api/v1/admin group guarded by tenant basic auth.
	Admin *gin.RouterGroup
	// Super is the /superadmin group guarded by the super-admin credentials.
	Super *gin.RouterGroup
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies. It is populated
// by main.go (the composition root) and handed to the router.
type App struct {
	Config *config.Config
	Logger *logger.Logger
	Health HealthChecker

	// Auth middlewares, built by the tenants module.
	BotAuth   gin.HandlerFunc
	AdminAuth gin.HandlerFunc
	SuperAuth gin.HandlerFunc

	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
