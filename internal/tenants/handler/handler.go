package handler

import (
	"net/http"
	"strconv"

	"salon_booking_backend/internal/tenants/service"
	"salon_booking_backend/internal/tenants/transport"
	"salon_booking_backend/platform/httpkit"
	"salon_booking_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidSalonID = "invalid salon ID"
)

// Handler serves the super-admin salon lifecycle API.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates the super-admin handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the super-admin routes.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/salons", h.List)
	group.POST("/salons", h.Create)
	group.PUT("/salons/:id", h.Update)
}

// List returns all salons without secrets.
// GET /superadmin/salons
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.ListSalons(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create registers a new salon. The admin UI posts this form-encoded.
// POST /superadmin/salons
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateSalonRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.CreateSalon(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Update applies a partial update to a salon.
// PUT /superadmin/salons/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSalonID)
		return
	}

	var req transport.UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.UpdateSalon(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
