package transport

import (
	"salon_booking_backend/internal/catalog/repository"
	"salon_booking_backend/internal/catalog/service"
)

// ServiceResponse is a bookable service as returned to bot and admin callers.
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ToServiceResponse converts a stored service to its API shape.
func ToServiceResponse(svc repository.Service) ServiceResponse {
	return ServiceResponse{
		ID:              svc.ID,
		Name:            svc.Name,
		Price:           svc.Price,
		DurationMinutes: svc.DurationMinutes,
	}
}

// ToServiceResponses converts a slice of stored services.
func ToServiceResponses(items []repository.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToServiceResponse(item))
	}
	return out
}

// ServiceRequest creates or fully replaces a service.
type ServiceRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Price           int    `json:"price" validate:"gte=0"`
	DurationMinutes int    `json:"duration_minutes" validate:"gt=0"`
}

// MasterResponse is a master as returned to bot and admin callers.
type MasterResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Description    *string `json:"description,omitempty"`
}

// ToMasterResponse converts a stored master to its API shape.
func ToMasterResponse(m repository.Master) MasterResponse {
	return MasterResponse{
		ID:             m.ID,
		Name:           m.Name,
		Specialization: m.Specialization,
		Description:    m.Description,
	}
}

// ToMasterResponses converts a slice of stored masters.
func ToMasterResponses(items []repository.Master) []MasterResponse {
	out := make([]MasterResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToMasterResponse(item))
	}
	return out
}

// MasterRequest creates or fully replaces a master. ServiceIDs replaces the
// membership set; omitting it clears all memberships.
type MasterRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	Specialization string  `json:"specialization" validate:"max=200"`
	Description    *string `json:"description"`
	ServiceIDs     []int64 `json:"service_ids" validate:"dive,gt=0"`
}

// DayScheduleDTO is one weekday in a master's schedule payload.
type DayScheduleDTO struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=1,max=7"`
	Working   bool   `json:"working"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ScheduleRequest replaces a master's weekly schedule.
type ScheduleRequest struct {
	Entries []DayScheduleDTO `json:"entries" validate:"required,len=7,dive"`
}

// ToDayScheduleDTO converts a service-layer day entry.
func ToDayScheduleDTO(day service.DaySchedule) DayScheduleDTO {
	return DayScheduleDTO{
		DayOfWeek: day.DayOfWeek,
		Working:   day.Working,
		StartTime: day.StartTime,
		EndTime:   day.EndTime,
	}
}

// ToDaySchedules converts schedule DTOs to the service-layer form.
func ToDaySchedules(entries []DayScheduleDTO) []service.DaySchedule {
	out := make([]service.DaySchedule, 0, len(entries))
	for _, entry := range entries {
		out = append(out, service.DaySchedule{
			DayOfWeek: entry.DayOfWeek,
			Working:   entry.Working,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
		})
	}
	return out
}

// SalonInfoResponse is the compact catalog summary for LLM front-ends.
type SalonInfoResponse struct {
	Title    string             `json:"title"`
	Services []SalonInfoService `json:"services"`
	Masters  []SalonInfoMaster  `json:"masters"`
}

// SalonInfoService is a service inside the salon-info summary.
type SalonInfoService struct {
	Name            string `json:"name"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
}

// SalonInfoMaster is a master inside the salon-info summary.
type SalonInfoMaster struct {
	Name           string   `json:"name"`
	Specialization string   `json:"specialization"`
	Services       []string `json:"services"`
}

// ToSalonInfoResponse converts the assembled catalog summary.
func ToSalonInfoResponse(title string, info *service.SalonInfo) SalonInfoResponse {
	resp := SalonInfoResponse{
		Title:    title,
		Services: make([]SalonInfoService, 0, len(info.Services)),
		Masters:  make([]SalonInfoMaster, 0, len(info.Masters)),
	}
	for _, svc := range info.Services {
		resp.Services = append(resp.Services, SalonInfoService{
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		})
	}
	for _, m := range info.Masters {
		resp.Masters = append(resp.Masters, SalonInfoMaster{
			Name:           m.Master.Name,
			Specialization: m.Master.Specialization,
			Services:       m.Services,
		})
	}
	return resp
}

// ClientResponse is a client as returned to admin callers.
type ClientResponse struct {
	ID             int64   `json:"id"`
	ExternalUserID int64   `json:"external_user_id"`
	Name           string  `json:"name"`
	Phone          *string `json:"phone,omitempty"`
}

// ToClientResponse converts a stored client to its API shape.
func ToClientResponse(c repository.Client) ClientResponse {
	return ClientResponse{
		ID:             c.ID,
		ExternalUserID: c.ExternalUserID,
		Name:           c.Name,
		Phone:          c.Phone,
	}
}

// ToClientResponses converts a slice of stored clients.
func ToClientResponses(items []repository.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToClientResponse(item))
	}
	return out
}

// CreateClientRequest adds a client. ExternalUserID may be omitted for
// clients without a chat identity.
type CreateClientRequest struct {
	ExternalUserID *int64  `json:"external_user_id"`
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	Phone          *string `json:"phone"`
}

// UpdateClientRequest replaces a client's editable fields.
type UpdateClientRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=200"`
	Phone *string `json:"phone"`
}
