package handler

import (
	"net/http"
	"strconv"
	"time"

	"salon_booking_backend/internal/booking/service"
	"salon_booking_backend/internal/booking/transport"
	"salon_booking_backend/internal/tenants/middleware"
	"salon_booking_backend/platform/httpkit"
	"salon_booking_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest       = "invalid request"
	msgInvalidAppointmentID = "invalid appointment ID"
	msgInvalidUserID        = "invalid external user ID"
)

// Handler serves the bot-facing booking API.
type Handler struct {
	svc         *service.Service
	val         *validator.Validator
	fallbackLoc *time.Location
}

// New creates the bot booking handler.
func New(svc *service.Service, val *validator.Validator, fallbackLoc *time.Location) *Handler {
	return &Handler{svc: svc, val: val, fallbackLoc: fallbackLoc}
}

// RegisterRoutes mounts the bot booking routes.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/appointments", h.Create)
	group.POST("/appointments/natural", h.CreateNatural)
	group.DELETE("/bot/appointments/:id", h.Cancel)
	group.GET("/clients/:external_user_id/appointments", h.ClientAppointments)
	group.PATCH("/clients/:external_user_id", h.SetPhone)
}

// Create books a slot the chat UI selected.
// POST /api/v1/appointments
func (h *Handler) Create(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	var req transport.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	booked, err := h.svc.CreateFromBot(c.Request.Context(), service.BotCreateInput{
		SalonID:        salon.ID,
		ExternalUserID: req.ExternalUserID,
		UserName:       req.UserName,
		ServiceID:      req.ServiceID,
		MasterID:       req.MasterID,
		StartTime:      req.StartTime.Time,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToBookedResponse(booked))
}

// CreateNatural books from extracted chat phrasing.
// POST /api/v1/appointments/natural
func (h *Handler) CreateNatural(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	var req transport.NaturalAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	booked, err := h.svc.CreateNatural(c.Request.Context(), service.NaturalInput{
		SalonID:         salon.ID,
		ExternalUserID:  req.ExternalUserID,
		UserName:        req.UserName,
		ServiceName:     req.ServiceName,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		MasterName:      req.MasterName,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToBookedResponse(booked))
}

// Cancel hard-deletes an appointment on the client's behalf.
// DELETE /api/v1/bot/appointments/:id
func (h *Handler) Cancel(c *gin.Context) {
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

// ClientAppointments lists a chat client's future appointments.
// GET /api/v1/clients/:external_user_id/appointments
func (h *Handler) ClientAppointments(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	externalUserID, err := strconv.ParseInt(c.Param("external_user_id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidUserID)
		return
	}

	items, err := h.svc.ClientAppointments(c.Request.Context(), salon.ID, externalUserID, salon.Location(h.fallbackLoc))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToAppointmentResponses(items))
}

// SetPhone stores a chat client's phone number.
// PATCH /api/v1/clients/:external_user_id
func (h *Handler) SetPhone(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	externalUserID, err := strconv.ParseInt(c.Param("external_user_id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidUserID)
		return
	}

	var req transport.PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if httpkit.HandleError(c, h.svc.SetClientPhone(c.Request.Context(), salon.ID, externalUserID, req.PhoneNumber)) {
		return
	}
	httpkit.OK(c, gin.H{"status": "ok"})
}
