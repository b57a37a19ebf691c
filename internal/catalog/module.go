// Package catalog holds each salon's bookable inventory: services, masters,
// master-to-service memberships, weekly schedules and the admin-side client
// directory.
package catalog

import (
	"salon_booking_backend/internal/catalog/handler"
	"salon_booking_backend/internal/catalog/repository"
	"salon_booking_backend/internal/catalog/service"
	apphttp "salon_booking_backend/internal/http"
	"salon_booking_backend/platform/logger"
	"salon_booking_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the catalog store: bot reads and admin writes.
type Module struct {
	handler      *handler.Handler
	adminHandler *handler.AdminHandler
	svc          *service.Service
}

// NewModule creates the catalog module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)

	return &Module{
		handler:      handler.New(svc, val),
		adminHandler: handler.NewAdmin(svc, val),
		svc:          svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "catalog"
}

// Service exposes the catalog for other modules.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts the bot and admin catalog APIs.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Bot)
	m.adminHandler.RegisterRoutes(ctx.Admin)
}

var _ apphttp.Module = (*Module)(nil)
