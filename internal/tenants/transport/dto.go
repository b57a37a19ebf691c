package transport

import (
	"time"

	"salon_booking_backend/internal/tenants/repository"
)

// CreateSalonRequest is the form-encoded super-admin create payload.
type CreateSalonRequest struct {
	Name     string `form:"name" validate:"required,min=1,max=100"`
	Title    string `form:"title" validate:"required,min=1,max=200"`
	Token    string `form:"token" validate:"required,min=16"`
	Password string `form:"password" validate:"required,min=8"`
}

// UpdateSalonRequest is the JSON super-admin partial-update payload.
type UpdateSalonRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Token    *string `json:"token,omitempty" validate:"omitempty,min=16"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Active   *bool   `json:"active,omitempty"`
	Timezone *string `json:"timezone,omitempty" validate:"omitempty,min=1,max=64"`
}

// SalonResponse is a salon without its secrets.
type SalonResponse struct {
	ID        int64  `json:"id"`
	LoginName string `json:"login_name"`
	Title     string `json:"title"`
	Active    bool   `json:"active"`
	Timezone  string `json:"timezone"`
	CreatedAt string `json:"created_at"`
}

// ToSalonResponse strips secrets from a salon row.
func ToSalonResponse(s *repository.Salon) SalonResponse {
	return SalonResponse{
		ID:        s.ID,
		LoginName: s.LoginName,
		Title:     s.DisplayTitle,
		Active:    s.Active,
		Timezone:  s.Timezone,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}
