package handler

import (
	"net/http"
	"strconv"

	"salon_booking_backend/internal/catalog/repository"
	"salon_booking_backend/internal/catalog/service"
	"salon_booking_backend/internal/catalog/transport"
	"salon_booking_backend/internal/tenants/middleware"
	"salon_booking_backend/platform/httpkit"
	"salon_booking_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the salon-scoped catalog management API.
type AdminHandler struct {
	svc *service.Service
	val *validator.Validator
}

// NewAdmin creates the admin catalog handler.
func NewAdmin(svc *service.Service, val *validator.Validator) *AdminHandler {
	return &AdminHandler{svc: svc, val: val}
}

// RegisterRoutes mounts the admin catalog routes.
func (h *AdminHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/services", h.ListServices)
	group.POST("/services", h.CreateService)
	group.PUT("/services/:id", h.UpdateService)
	group.DELETE("/services/:id", h.DeleteService)

	group.GET("/masters", h.ListMasters)
	group.POST("/masters", h.CreateMaster)
	group.PUT("/masters/:id", h.UpdateMaster)
	group.DELETE("/masters/:id", h.DeleteMaster)
	group.GET("/masters/:id/schedule", h.GetSchedule)
	group.PUT("/masters/:id/schedule", h.PutSchedule)

	group.GET("/clients", h.ListClients)
	group.POST("/clients", h.CreateClient)
	group.PUT("/clients/:id", h.UpdateClient)
	group.DELETE("/clients/:id", h.DeleteClient)
}

// ListServices returns the salon's services.
// GET /api/v1/admin/services
func (h *AdminHandler) ListServices(c *gin.Context) {
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

// CreateService adds a service to the salon.
// POST /api/v1/admin/services
func (h *AdminHandler) CreateService(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	req, ok := h.bindServiceRequest(c)
	if !ok {
		return
	}

	saved, err := h.svc.CreateService(c.Request.Context(), &repository.Service{
		SalonID:         salon.ID,
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToServiceResponse(*saved))
}

// UpdateService replaces a service's fields.
// PUT /api/v1/admin/services/:id
func (h *AdminHandler) UpdateService(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	id, ok := pathID(c, msgInvalidServiceID)
	if !ok {
		return
	}
	req, ok := h.bindServiceRequest(c)
	if !ok {
		return
	}

	saved, err := h.svc.UpdateService(c.Request.Context(), &repository.Service{
		ID:              id,
		SalonID:         salon.ID,
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToServiceResponse(*saved))
}

// DeleteService removes a service.
// DELETE /api/v1/admin/services/:id
func (h *AdminHandler) DeleteService(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	id, ok := pathID(c, msgInvalidServiceID)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteService(c.Request.Context(), salon.ID, id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMasters returns the salon's masters.
// GET /api/v1/admin/masters
func (h *AdminHandler) ListMasters(c *gin.Context) {
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

// CreateMaster adds a master with optional service memberships.
// POST /api/v1/admin/masters
func (h *AdminHandler) CreateMaster(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	req, ok := h.bindMasterRequest(c)
	if !ok {
		return
	}

	saved, err := h.svc.CreateMaster(c.Request.Context(), &repository.Master{
		SalonID:        salon.ID,
		Name:           req.Name,
		Specialization: req.Specialization,
		Description:    req.Description,
	}, req.ServiceIDs)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToMasterResponse(*saved))
}

// UpdateMaster replaces a master's fields and membership set.
// PUT /api/v1/admin/masters/:id
func (h *AdminHandler) UpdateMaster(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	id, ok := pathID(c, msgInvalidMasterID)
	if !ok {
		return
	}
	req, ok := h.bindMasterRequest(c)
	if !ok {
		return
	}

	saved, err := h.svc.UpdateMaster(c.Request.Context(), &repository.Master{
		ID:             id,
		SalonID:        salon.ID,
		Name:           req.Name,
		Specialization: req.Specialization,
		Description:    req.Description,
	}, req.ServiceIDs)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToMasterResponse(*saved))
}

// DeleteMaster removes a master.
// DELETE /api/v1/admin/masters/:id
func (h *AdminHandler) DeleteMaster(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	id, ok := pathID(c, msgInvalidMasterID)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteMaster(c.Request.Context(), salon.ID, id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSchedule returns a master's full week, seven entries.
// GET /api/v1/admin/masters/:id/schedule
func (h *AdminHandler) GetSchedule(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	id, ok := pathID(c, msgInvalidMasterID)
	if !ok {
		return
	}

	week, err := h.svc.GetWeekSchedule(c.Request.Context(), salon.ID, id)
	if httpkit.HandleError(c, err) {
		return
	}

	entries := make([]transport.DayScheduleDTO, 0, len(week))
	for _, day := range week {
		entries = append(entries, transport.ToDayScheduleDTO(day))
	}
	httpkit.OK(c, gin.H{"entries": entries})
}

// PutSchedule replaces a master's weekly schedule. Invalid entries are
// silently skipped so a partially broken form still saves the valid days.
// PUT /api/v1/admin/masters/:id/schedule
func (h *AdminHandler) PutSchedule(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	id, ok := pathID(c, msgInvalidMasterID)
	if !ok {
		return
	}

	var req transport.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.svc.PutWeekSchedule(c.Request.Context(), salon.ID, id, transport.ToDaySchedules(req.Entries))
	if httpkit.HandleError(c, err) {
		return
	}

	week, err := h.svc.GetWeekSchedule(c.Request.Context(), salon.ID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	entries := make([]transport.DayScheduleDTO, 0, len(week))
	for _, day := range week {
		entries = append(entries, transport.ToDayScheduleDTO(day))
	}
	httpkit.OK(c, gin.H{"entries": entries})
}

// ListClients returns the salon's clients.
// GET /api/v1/admin/clients
func (h *AdminHandler) ListClients(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	items, err := h.svc.ListClients(c.Request.Context(), salon.ID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToClientResponses(items))
}

// CreateClient adds a client, assigning a synthetic external id when the
// request carries none.
// POST /api/v1/admin/clients
func (h *AdminHandler) CreateClient(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	var req transport.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.svc.CreateClient(c.Request.Context(), salon.ID, req.ExternalUserID, req.Name, req.Phone)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToClientResponse(*saved))
}

// UpdateClient replaces a client's editable fields.
// PUT /api/v1/admin/clients/:id
func (h *AdminHandler) UpdateClient(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	id, ok := pathID(c, msgInvalidClientID)
	if !ok {
		return
	}

	var req transport.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := h.svc.UpdateClient(c.Request.Context(), salon.ID, id, req.Name, req.Phone)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToClientResponse(*saved))
}

// DeleteClient removes a client.
// DELETE /api/v1/admin/clients/:id
func (h *AdminHandler) DeleteClient(c *gin.Context) {
	salon := middleware.MustSalon(c)
	if salon == nil {
		return
	}

	id, ok := pathID(c, msgInvalidClientID)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteClient(c.Request.Context(), salon.ID, id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) bindServiceRequest(c *gin.Context) (*transport.ServiceRequest, bool) {
	var req transport.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return nil, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &req, true
}

func (h *AdminHandler) bindMasterRequest(c *gin.Context) (*transport.MasterRequest, bool) {
	var req transport.MasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return nil, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &req, true
}

func pathID(c *gin.Context, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}
