// Package availability computes bookable slots from master schedules and
// existing appointments: the day view the booking UI renders and the
// month view its calendar is built from.
package availability

import (
	"salon_booking_backend/internal/availability/handler"
	"salon_booking_backend/internal/availability/repository"
	"salon_booking_backend/internal/availability/service"
	apphttp "salon_booking_backend/internal/http"
	"salon_booking_backend/platform/config"
	"salon_booking_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the availability engine into the bot zone.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// NewModule creates the availability module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log, cfg.SlotGridMinutes)

	return &Module{
		handler: handler.New(svc, cfg.Location()),
		svc:     svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "availability"
}

// Service exposes the slot engine for other modules.
func (m *Module) Service() *service.Service {
	return m.svc
}

// RegisterRoutes mounts the availability endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Bot)
}

var _ apphttp.Module = (*Module)(nil)
