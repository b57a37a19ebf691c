// Package booking owns the appointment lifecycle: the conflict-checked
// booking pipeline shared by chat, natural-language and admin entry points,
// cancellations and the client-facing appointment lists.
package booking

import (
	"salon_booking_backend/internal/booking/handler"
	"salon_booking_backend/internal/booking/repository"
	"salon_booking_backend/internal/booking/service"
	apphttp "salon_booking_backend/internal/http"
	"salon_booking_backend/platform/config"
	"salon_booking_backend/platform/logger"
	"salon_booking_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the booking engine into the bot and admin zones.
type Module struct {
	handler      *handler.Handler
	adminHandler *handler.AdminHandler
	svc          *service.Service
}

// NewModule creates the booking module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)

	return &Module{
		handler:      handler.New(svc, val, cfg.Location()),
		adminHandler: handler.NewAdmin(svc, val),
		svc:          svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "booking"
}

// RegisterRoutes mounts the bot and admin booking APIs.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Bot)
	m.adminHandler.RegisterRoutes(ctx.Admin)
}

var _ apphttp.Module = (*Module)(nil)
