package transport

import (
	"salon_booking_backend/internal/booking/repository"
	"salon_booking_backend/internal/booking/service"
	"salon_booking_backend/platform/timeutil"
)

// CreateAppointmentRequest books a slot picked in the chat UI.
type CreateAppointmentRequest struct {
	ExternalUserID int64             `json:"external_user_id" validate:"required"`
	UserName       string            `json:"user_name" validate:"required,min=1,max=200"`
	ServiceID      int64             `json:"service_id" validate:"required,gt=0"`
	MasterID       int64             `json:"master_id" validate:"required,gt=0"`
	StartTime      timeutil.DateTime `json:"start_time" validate:"required"`
}

// NaturalAppointmentRequest books from extracted chat phrasing: names and
// text date/time instead of ids.
type NaturalAppointmentRequest struct {
	ExternalUserID  int64  `json:"external_user_id" validate:"required"`
	UserName        string `json:"user_name" validate:"required,min=1,max=200"`
	ServiceName     string `json:"service_name" validate:"required,min=1"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
	MasterName      string `json:"master_name"`
}

// AdminCreateAppointmentRequest books on behalf of an existing client.
type AdminCreateAppointmentRequest struct {
	ClientID  int64             `json:"client_id" validate:"required,gt=0"`
	MasterID  int64             `json:"master_id" validate:"required,gt=0"`
	ServiceID int64             `json:"service_id" validate:"required,gt=0"`
	StartTime timeutil.DateTime `json:"start_time" validate:"required"`
}

// AdminUpdateAppointmentRequest rewrites an appointment.
type AdminUpdateAppointmentRequest struct {
	MasterID  int64             `json:"master_id" validate:"required,gt=0"`
	ServiceID int64             `json:"service_id" validate:"required,gt=0"`
	StartTime timeutil.DateTime `json:"start_time" validate:"required"`
}

// PhoneRequest stores a chat client's phone number.
type PhoneRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=3,max=32"`
}

// BookedResponse confirms a booking to the chat front-end.
type BookedResponse struct {
	ID          int64             `json:"id"`
	StartTime   timeutil.DateTime `json:"start_time"`
	ServiceName string            `json:"service_name"`
	MasterName  string            `json:"master_name"`
}

// ToBookedResponse converts a confirmed booking.
func ToBookedResponse(b *service.Booked) BookedResponse {
	return BookedResponse{
		ID:          b.ID,
		StartTime:   timeutil.NewDateTime(b.StartTime),
		ServiceName: b.ServiceName,
		MasterName:  b.MasterName,
	}
}

// AppointmentResponse is a full appointment with joined names.
type AppointmentResponse struct {
	ID          int64             `json:"id"`
	ClientID    int64             `json:"client_id"`
	MasterID    int64             `json:"master_id"`
	ServiceID   int64             `json:"service_id"`
	StartTime   timeutil.DateTime `json:"start_time"`
	EndTime     timeutil.DateTime `json:"end_time"`
	ClientName  string            `json:"client_name"`
	MasterName  string            `json:"master_name"`
	ServiceName string            `json:"service_name"`
}

// ToAppointmentResponse converts a joined appointment row.
func ToAppointmentResponse(d repository.Detail) AppointmentResponse {
	return AppointmentResponse{
		ID:          d.ID,
		ClientID:    d.ClientID,
		MasterID:    d.MasterID,
		ServiceID:   d.ServiceID,
		StartTime:   timeutil.NewDateTime(d.StartTime),
		EndTime:     timeutil.NewDateTime(d.EndTime),
		ClientName:  d.ClientName,
		MasterName:  d.MasterName,
		ServiceName: d.ServiceName,
	}
}

// ToAppointmentResponses converts a slice of joined rows.
func ToAppointmentResponses(items []repository.Detail) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToAppointmentResponse(item))
	}
	return out
}
