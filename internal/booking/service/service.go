package service

import (
	"context"
	"time"

	"salon_booking_backend/internal/booking/repository"
	"salon_booking_backend/platform/apperr"
	"salon_booking_backend/platform/logger"
	"salon_booking_backend/platform/phone"
	"salon_booking_backend/platform/timeutil"
)

// Store defines the persistence operations the booking engine needs.
type Store interface {
	GetService(ctx context.Context, salonID, serviceID int64) (*repository.BookedService, error)
	GetMaster(ctx context.Context, salonID, masterID int64) (*repository.BookedMaster, error)
	FindServiceByName(ctx context.Context, salonID int64, name string) (*repository.BookedService, error)
	FindMasterByName(ctx context.Context, salonID int64, name string) (*repository.BookedMaster, error)
	FindAnyMasterForService(ctx context.Context, salonID, serviceID int64) (*repository.BookedMaster, error)

	GetClientID(ctx context.Context, salonID, clientID int64) (int64, error)
	UpsertClient(ctx context.Context, salonID, externalUserID int64, name string) (int64, error)
	UpsertClientPhone(ctx context.Context, salonID, externalUserID int64, phone string) error

	Create(ctx context.Context, params repository.CreateParams) (*repository.Appointment, error)
	Update(ctx context.Context, params repository.UpdateParams) (*repository.Appointment, error)
	Delete(ctx context.Context, salonID, id int64) error
	GetDetail(ctx context.Context, salonID, id int64) (*repository.Detail, error)
	ListForDay(ctx context.Context, salonID int64, from, to time.Time) ([]repository.Detail, error)
	ListUpcomingForClient(ctx context.Context, salonID, externalUserID int64, now time.Time) ([]repository.Detail, error)
}

// BotCreateInput is a booking request from a chat front-end.
type BotCreateInput struct {
	SalonID        int64
	ExternalUserID int64
	UserName       string
	ServiceID      int64
	MasterID       int64
	StartTime      time.Time
}

// AdminCreateInput is a booking created from the admin panel. The client
// must already exist; working hours are not enforced here.
type AdminCreateInput struct {
	SalonID   int64
	ClientID  int64
	MasterID  int64
	ServiceID int64
	StartTime time.Time
}

// AdminUpdateInput rewrites an appointment from the admin panel.
type AdminUpdateInput struct {
	ID        int64
	SalonID   int64
	MasterID  int64
	ServiceID int64
	StartTime time.Time
}

// Booked is a confirmed booking as answered to the caller.
type Booked struct {
	ID          int64
	StartTime   time.Time
	ServiceName string
	MasterName  string
}

// Service implements the booking pipeline.
type Service struct {
	repo Store
	log  *logger.Logger

	// now is swapped in tests to pin the clock.
	now func(loc *time.Location) time.Time
}

// New creates a booking service.
func New(repo Store, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: timeutil.WallClockNow}
}

// CreateFromBot books an appointment for a chat client, creating the client
// record on first contact. Working hours are a hard requirement here.
func (s *Service) CreateFromBot(ctx context.Context, in BotCreateInput) (*Booked, error) {
	svc, err := s.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	master, err := s.repo.GetMaster(ctx, in.SalonID, in.MasterID)
	if err != nil {
		return nil, err
	}
	clientID, err := s.repo.UpsertClient(ctx, in.SalonID, in.ExternalUserID, in.UserName)
	if err != nil {
		return nil, err
	}

	return s.book(ctx, in.SalonID, clientID, svc, master, in.StartTime, true)
}

// CreateFromAdmin books an appointment for an existing client without
// enforcing working hours.
func (s *Service) CreateFromAdmin(ctx context.Context, in AdminCreateInput) (*Booked, error) {
	clientID, err := s.repo.GetClientID(ctx, in.SalonID, in.ClientID)
	if err != nil {
		return nil, err
	}
	svc, err := s.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	master, err := s.repo.GetMaster(ctx, in.SalonID, in.MasterID)
	if err != nil {
		return nil, err
	}

	return s.book(ctx, in.SalonID, clientID, svc, master, in.StartTime, false)
}

// UpdateFromAdmin rewrites an appointment, recomputing its end from the new
// service's duration.
func (s *Service) UpdateFromAdmin(ctx context.Context, in AdminUpdateInput) (*repository.Detail, error) {
	svc, err := s.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetMaster(ctx, in.SalonID, in.MasterID); err != nil {
		return nil, err
	}

	start := timeutil.StripZone(in.StartTime)
	updated, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:        in.ID,
		SalonID:   in.SalonID,
		MasterID:  in.MasterID,
		ServiceID: in.ServiceID,
		StartTime: start,
		EndTime:   start.Add(time.Duration(svc.DurationMinutes) * time.Minute),
	})
	if err != nil {
		s.noteConflict(in.SalonID, in.MasterID, err)
		return nil, err
	}
	return s.repo.GetDetail(ctx, in.SalonID, updated.ID)
}

func (s *Service) book(ctx context.Context, salonID, clientID int64, svc *repository.BookedService, master *repository.BookedMaster, startTime time.Time, enforceSchedule bool) (*Booked, error) {
	start := timeutil.StripZone(startTime)
	created, err := s.repo.Create(ctx, repository.CreateParams{
		SalonID:         salonID,
		ClientID:        clientID,
		MasterID:        master.ID,
		ServiceID:       svc.ID,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(svc.DurationMinutes) * time.Minute),
		EnforceSchedule: enforceSchedule,
	})
	if err != nil {
		s.noteConflict(salonID, master.ID, err)
		return nil, err
	}

	return &Booked{
		ID:          created.ID,
		StartTime:   created.StartTime,
		ServiceName: svc.Name,
		MasterName:  master.Name,
	}, nil
}

func (s *Service) noteConflict(salonID, masterID int64, err error) {
	if apperr.Is(err, apperr.KindConflict) {
		s.log.BookingConflict(salonID, masterID, err.Error())
	}
}

// Cancel hard-deletes an appointment within the salon's scope.
func (s *Service) Cancel(ctx context.Context, salonID, id int64) error {
	return s.repo.Delete(ctx, salonID, id)
}

// ListDay returns the salon's appointments of one day for the admin view.
func (s *Service) ListDay(ctx context.Context, salonID int64, date time.Time) ([]repository.Detail, error) {
	from, to := timeutil.DayBounds(date)
	return s.repo.ListForDay(ctx, salonID, from, to)
}

// ClientAppointments returns a chat client's future appointments in salon
// time. Unknown clients just have an empty list.
func (s *Service) ClientAppointments(ctx context.Context, salonID, externalUserID int64, loc *time.Location) ([]repository.Detail, error) {
	return s.repo.ListUpcomingForClient(ctx, salonID, externalUserID, s.now(loc))
}

// SetClientPhone normalizes and stores a chat client's phone number,
// creating the client when the identity is new.
func (s *Service) SetClientPhone(ctx context.Context, salonID, externalUserID int64, raw string) error {
	normalized := phone.NormalizeE164(raw)
	if normalized == "" {
		return apperr.Validation("phone_number is required")
	}
	return s.repo.UpsertClientPhone(ctx, salonID, externalUserID, normalized)
}
