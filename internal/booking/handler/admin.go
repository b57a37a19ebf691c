package handler

import (
	"net/http"
	"strconv"

	"salon_booking_backend/internal/booking/service"
	"salon_booking_backend/internal/booking/transport"
	"salon_booking_backend/internal/tenants/middleware"
	"salon_booking_backend/platform/httpkit"
	"salon_booking_backend/platform/timeutil"
	"salon_booking_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the salon-scoped appointment management API.
type AdminHandler struct {
	svc *service.Service
	val *validator.Validator
}

// NewAdmin creates the admin booking handler.
func NewAdmin(svc *service.Service, val *validator.Validator) *AdminHandler {
	return &AdminHandler{svc: svc, val: val}
}

// RegisterRoutes mounts the admin appointment routes.
func (h *AdminHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/appointments", h.ListDay)
	group.POST("/appointments", h.Create)
	group.PUT("/appointments/:id", h.Update)
	group.DELETE("/appointments/:id", h.Delete)
}

// ListDay returns one day's appointments with names, ordered by start.
// GET /api/v1/admin/appointments?date=YYYY-MM-DD
func (h *AdminHandler) ListDay(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	date, err := timeutil.ParseDate(c.Query("date"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := h.svc.ListDay(c.Request.Context(), salon.ID, date)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToAppointmentResponses(items))
}

// Create books on behalf of an existing client. Working hours are not
// enforced on this path.
// POST /api/v1/admin/appointments
func (h *AdminHandler) Create(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	var req transport.AdminCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	booked, err := h.svc.CreateFromAdmin(c.Request.Context(), service.AdminCreateInput{
		SalonID:   salon.ID,
		ClientID:  req.ClientID,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		StartTime: req.StartTime.Time,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToBookedResponse(booked))
}

// Update rewrites an appointment, recomputing its end time.
// PUT /api/v1/admin/appointments/:id
func (h *AdminHandler) Update(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidAppointmentID)
		return
	}

	var req transport.AdminUpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.UpdateFromAdmin(c.Request.Context(), service.AdminUpdateInput{
		ID:        id,
		SalonID:   salon.ID,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		StartTime: req.StartTime.Time,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToAppointmentResponse(*updated))
}

// Delete removes an appointment.
// DELETE /api/v1/admin/appointments/:id
func (h *AdminHandler) Delete(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidAppointmentID)
		return
	}

	if httpkit.HandleError(c, h.svc.Cancel(c.Request.Context(), salon.ID, id)) {
		return
	}
	c.Status(http.StatusNoContent)
}
