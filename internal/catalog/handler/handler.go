package handler

import (
	"net/http"
	"strconv"

	"salon_booking_backend/internal/catalog/service"
	"salon_booking_backend/internal/catalog/transport"
	"salon_booking_backend/internal/tenants/middleware"
	"salon_booking_backend/platform/httpkit"
	"salon_booking_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgInvalidServiceID = "invalid service ID"
	msgInvalidMasterID  = "invalid master ID"
	msgInvalidClientID  = "invalid client ID"
)

// Handler serves the read-only catalog API used by bot front-ends.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates the catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the bot-facing catalog routes.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/services", h.ListServices)
	group.GET("/services/:id/masters", h.MastersForService)
	group.GET("/masters", h.ListMasters)
	group.GET("/salon-info", h.SalonInfo)
}

// ListServices returns the salon's services.
// GET /api/v1/services
func (h *Handler) ListServices(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	items, err := h.svc.ListServices(c.Request.Context(), salon.ID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToServiceResponses(items))
}

// MastersForService returns the masters offering one service.
// GET /api/v1/services/:id/masters
func (h *Handler) MastersForService(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	serviceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidServiceID)
		return
	}

	items, err := h.svc.MastersForService(c.Request.Context(), salon.ID, serviceID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToMasterResponses(items))
}

// ListMasters returns the salon's masters.
// GET /api/v1/masters
func (h *Handler) ListMasters(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	items, err := h.svc.ListMasters(c.Request.Context(), salon.ID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToMasterResponses(items))
}

// SalonInfo returns the compact catalog summary that conversational
// front-ends embed into their prompts.
// GET /api/v1/salon-info
func (h *Handler) SalonInfo(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	info, err := h.svc.GetSalonInfo(c.Request.Context(), salon.ID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToSalonInfoResponse(salon.DisplayTitle, info))
}
