package service

import (
	"context"

	"salon_booking_backend/internal/booking/repository"
	"salon_booking_backend/platform/apperr"
	"salon_booking_backend/platform/timeutil"
)

// NaturalInput is a booking request phrased the way an LLM front-end
// extracts it from chat: names instead of ids, date and time as text.
type NaturalInput struct {
	SalonID         int64
	ExternalUserID  int64
	UserName        string
	ServiceName     string
	AppointmentDate string
	AppointmentTime string
	MasterName      string
}

// CreateNatural resolves names to catalog rows and books through the same
// conflict pipeline as CreateFromBot. All resolution happens before the
// booking transaction opens.
func (s *Service) CreateNatural(ctx context.Context, in NaturalInput) (*Booked, error) {
	svc, err := s.repo.FindServiceByName(ctx, in.SalonID, in.ServiceName)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperr.NotFound("service not found")
	}

	master, err := s.resolveMaster(ctx, in.SalonID, svc.ID, in.MasterName)
	if err != nil {
		return nil, err
	}

	date, err := timeutil.ParseDate(in.AppointmentDate)
	if err != nil {
		return nil, apperr.BadRequest("invalid appointment_date, expected YYYY-MM-DD")
	}
	minutes, err := timeutil.ParseClock(in.AppointmentTime)
	if err != nil {
		return nil, apperr.BadRequest("invalid appointment_time, expected HH:MM")
	}

	clientID, err := s.repo.UpsertClient(ctx, in.SalonID, in.ExternalUserID, in.UserName)
	if err != nil {
		return nil, err
	}

	return s.book(ctx, in.SalonID, clientID, svc, master, timeutil.CombineDateClock(date, minutes), true)
}

// resolveMaster picks a master by name fragment, or any master offering the
// service when no name was given.
func (s *Service) resolveMaster(ctx context.Context, salonID, serviceID int64, name string) (*repository.BookedMaster, error) {
	if name != "" {
		master, err := s.repo.FindMasterByName(ctx, salonID, name)
		if err != nil {
			return nil, err
		}
		if master == nil {
			return nil, apperr.NotFound("master not found")
		}
		return master, nil
	}

	master, err := s.repo.FindAnyMasterForService(ctx, salonID, serviceID)
	if err != nil {
		return nil, err
	}
	if master == nil {
		return nil, apperr.NotFound("master not found")
	}
	return master, nil
}
