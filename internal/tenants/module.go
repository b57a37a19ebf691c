// Package tenants provides the tenant registry: resolving requests to a
// salon via bot token or admin credentials, and the super-admin API that
// manages salon lifecycles.
package tenants

import (
	apphttp "salon_booking_backend/internal/http"
	"salon_booking_backend/internal/tenants/handler"
	"salon_booking_backend/internal/tenants/middleware"
	"salon_booking_backend/internal/tenants/repository"
	"salon_booking_backend/internal/tenants/service"
	"salon_booking_backend/platform/config"
	"salon_booking_backend/platform/logger"
	"salon_booking_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the tenant registry: auth middlewares for the router and the
// super-admin lifecycle API.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// NewModule creates the tenants module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, service.SuperCredentials{
		Username: cfg.SuperAdminUsername,
		Password: cfg.SuperAdminPassword,
	}, cfg.BusinessTimezone, log)
	h := handler.New(svc, val)

	return &Module{handler: h, svc: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "tenants"
}

// Service exposes the registry for other modules.
func (m *Module) Service() *service.Service {
	return m.svc
}

// BotAuth returns the bot-token middleware for the router.
func (m *Module) BotAuth() gin.HandlerFunc {
	return middleware.BotTokenAuth(m.svc)
}

// AdminAuth returns the tenant basic-auth middleware for the router.
func (m *Module) AdminAuth() gin.HandlerFunc {
	return middleware.AdminBasicAuth(m.svc)
}

// SuperAuth returns the super-admin middleware for the router.
func (m *Module) SuperAuth() gin.HandlerFunc {
	return middleware.SuperBasicAuth(m.svc)
}

// RegisterRoutes mounts the super-admin API.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Super)
}

var _ apphttp.Module = (*Module)(nil)
