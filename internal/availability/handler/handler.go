package handler

import (
	"net/http"
	"strconv"
	"time"

	"salon_booking_backend/internal/availability/service"
	"salon_booking_backend/internal/availability/transport"
	"salon_booking_backend/internal/tenants/middleware"
	"salon_booking_backend/platform/httpkit"
	"salon_booking_backend/platform/timeutil"

	"github.com/gin-gonic/gin"
)

// Handler serves the slot and calendar lookups used by bot front-ends.
type Handler struct {
	svc         *service.Service
	fallbackLoc *time.Location
}

// New creates the availability handler. fallbackLoc is used for salons
// without a usable timezone of their own.
func New(svc *service.Service, fallbackLoc *time.Location) *Handler {
	return &Handler{svc: svc, fallbackLoc: fallbackLoc}
}

// RegisterRoutes mounts the availability routes on the bot zone.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/available-slots", h.AvailableSlots)
	group.GET("/active-days-in-month", h.ActiveDays)
}

// AvailableSlots lists the free starting times of one day.
// GET /api/v1/available-slots?service_id=&selected_date=[&master_id=][&external_user_id=]
func (h *Handler) AvailableSlots(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	serviceID, ok := requiredInt(c, "service_id")
	if !ok {
		return
	}
	date, err := timeutil.ParseDate(c.Query("selected_date"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid selected_date, expected YYYY-MM-DD")
		return
	}
	masterID, ok := optionalInt(c, "master_id")
	if !ok {
		return
	}
	externalUserID, ok := optionalInt(c, "external_user_id")
	if !ok {
		return
	}

	slots, err := h.svc.AvailableSlots(c.Request.Context(), service.Query{
		SalonID:        salon.ID,
		ServiceID:      serviceID,
		Date:           date,
		MasterID:       masterID,
		ExternalUserID: externalUserID,
		Location:       salon.Location(h.fallbackLoc),
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToSlotResponses(slots))
}

// ActiveDays lists the days of a month that still have at least one slot.
// GET /api/v1/active-days-in-month?service_id=&year=&month=[&master_id=][&external_user_id=]
func (h *Handler) ActiveDays(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	serviceID, ok := requiredInt(c, "service_id")
	if !ok {
		return
	}
	year, ok := requiredInt(c, "year")
	if !ok {
		return
	}
	month, ok := requiredInt(c, "month")
	if !ok {
		return
	}
	masterID, ok := optionalInt(c, "master_id")
	if !ok {
		return
	}
	externalUserID, ok := optionalInt(c, "external_user_id")
	if !ok {
		return
	}

	days, err := h.svc.ActiveDaysInMonth(c.Request.Context(), service.MonthQuery{
		SalonID:        salon.ID,
		ServiceID:      serviceID,
		Year:           int(year),
		Month:          int(month),
		MasterID:       masterID,
		ExternalUserID: externalUserID,
		Location:       salon.Location(h.fallbackLoc),
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, days)
}

func requiredInt(c *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return value, true
}

func optionalInt(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid "+name)
		return nil, false
	}
	return &value, true
}
