package service

import (
	"context"
	"fmt"

	"salon_booking_backend/internal/catalog/repository"
	"salon_booking_backend/platform/apperr"
	"salon_booking_backend/platform/logger"
	"salon_booking_backend/platform/timeutil"
)

// Store defines the persistence operations the catalog service needs.
type Store interface {
	ListServices(ctx context.Context, salonID int64) ([]repository.Service, error)
	GetService(ctx context.Context, salonID, id int64) (*repository.Service, error)
	CreateService(ctx context.Context, svc *repository.Service) (*repository.Service, error)
	UpdateService(ctx context.Context, svc *repository.Service) (*repository.Service, error)
	DeleteService(ctx context.Context, salonID, id int64) error

	ListMasters(ctx context.Context, salonID int64) ([]repository.Master, error)
	ListMastersForService(ctx context.Context, salonID, serviceID int64) ([]repository.Master, error)
	GetMaster(ctx context.Context, salonID, id int64) (*repository.Master, error)
	ListServiceNamesOfMaster(ctx context.Context, masterID int64) ([]string, error)
	CountServicesInSalon(ctx context.Context, salonID int64, serviceIDs []int64) (int, error)
	CreateMaster(ctx context.Context, master *repository.Master, serviceIDs []int64) (*repository.Master, error)
	UpdateMaster(ctx context.Context, master *repository.Master, serviceIDs []int64) (*repository.Master, error)
	DeleteMaster(ctx context.Context, salonID, id int64) error

	ListSchedule(ctx context.Context, masterID int64) ([]repository.ScheduleEntry, error)
	ReplaceSchedule(ctx context.Context, masterID int64, entries []repository.ScheduleEntry) error

	ListClients(ctx context.Context, salonID int64) ([]repository.Client, error)
	GetClient(ctx context.Context, salonID, id int64) (*repository.Client, error)
	CreateClient(ctx context.Context, salonID int64, externalUserID *int64, name string, phone *string) (*repository.Client, error)
	UpdateClient(ctx context.Context, client *repository.Client) (*repository.Client, error)
	DeleteClient(ctx context.Context, salonID, id int64) error
}

// Service implements catalog management for one salon at a time.
type Service struct {
	repo Store
	log  *logger.Logger
}

// New creates a catalog service.
func New(repo Store, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListServices returns the salon's services.
func (s *Service) ListServices(ctx context.Context, salonID int64) ([]repository.Service, error) {
	return s.repo.ListServices(ctx, salonID)
}

// GetService returns one service of the salon.
func (s *Service) GetService(ctx context.Context, salonID, id int64) (*repository.Service, error) {
	return s.repo.GetService(ctx, salonID, id)
}

// CreateService adds a service to the salon.
func (s *Service) CreateService(ctx context.Context, svc *repository.Service) (*repository.Service, error) {
	return s.repo.CreateService(ctx, svc)
}

// UpdateService updates a service of the salon.
func (s *Service) UpdateService(ctx context.Context, svc *repository.Service) (*repository.Service, error) {
	return s.repo.UpdateService(ctx, svc)
}

// DeleteService removes a service of the salon.
func (s *Service) DeleteService(ctx context.Context, salonID, id int64) error {
	return s.repo.DeleteService(ctx, salonID, id)
}

// ListMasters returns the salon's masters.
func (s *Service) ListMasters(ctx context.Context, salonID int64) ([]repository.Master, error) {
	return s.repo.ListMasters(ctx, salonID)
}

// MastersForService returns the masters offering a service. The service must
// belong to the salon.
func (s *Service) MastersForService(ctx context.Context, salonID, serviceID int64) ([]repository.Master, error) {
	if _, err := s.repo.GetService(ctx, salonID, serviceID); err != nil {
		return nil, err
	}
	return s.repo.ListMastersForService(ctx, salonID, serviceID)
}

// CreateMaster adds a master with an optional set of service memberships.
// Every referenced service must belong to the same salon.
func (s *Service) CreateMaster(ctx context.Context, master *repository.Master, serviceIDs []int64) (*repository.Master, error) {
	ids := dedupeIDs(serviceIDs)
	if err := s.checkMemberships(ctx, master.SalonID, ids); err != nil {
		return nil, err
	}
	return s.repo.CreateMaster(ctx, master, ids)
}

// UpdateMaster updates a master and replaces its membership set.
func (s *Service) UpdateMaster(ctx context.Context, master *repository.Master, serviceIDs []int64) (*repository.Master, error) {
	ids := dedupeIDs(serviceIDs)
	if err := s.checkMemberships(ctx, master.SalonID, ids); err != nil {
		return nil, err
	}
	return s.repo.UpdateMaster(ctx, master, ids)
}

// DeleteMaster removes a master of the salon.
func (s *Service) DeleteMaster(ctx context.Context, salonID, id int64) error {
	return s.repo.DeleteMaster(ctx, salonID, id)
}

func (s *Service) checkMemberships(ctx context.Context, salonID int64, serviceIDs []int64) error {
	if len(serviceIDs) == 0 {
		return nil
	}
	count, err := s.repo.CountServicesInSalon(ctx, salonID, serviceIDs)
	if err != nil {
		return err
	}
	if count != len(serviceIDs) {
		return apperr.NotFound("service not found")
	}
	return nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// DaySchedule is one weekday of a master's schedule as exposed over the API.
// Non-working days have empty start and end times.
type DaySchedule struct {
	DayOfWeek int
	Working   bool
	StartTime string
	EndTime   string
}

// GetWeekSchedule returns exactly seven entries, Monday (1) through Sunday
// (7), filling non-working days from the stored rows.
func (s *Service) GetWeekSchedule(ctx context.Context, salonID, masterID int64) ([]DaySchedule, error) {
	if _, err := s.repo.GetMaster(ctx, salonID, masterID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListSchedule(ctx, masterID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int]repository.ScheduleEntry, len(rows))
	for _, row := range rows {
		byDay[row.DayOfWeek] = row
	}

	week := make([]DaySchedule, 0, 7)
	for day := 1; day <= 7; day++ {
		entry := DaySchedule{DayOfWeek: day}
		if row, ok := byDay[day]; ok {
			entry.Working = true
			entry.StartTime = row.StartTime
			entry.EndTime = row.EndTime
		}
		week = append(week, entry)
	}
	return week, nil
}

// PutWeekSchedule replaces a master's weekly schedule. Entries that are not
// working, carry unparsable times, or have start >= end are skipped; only the
// first entry per weekday is kept. The replacement is atomic.
func (s *Service) PutWeekSchedule(ctx context.Context, salonID, masterID int64, entries []DaySchedule) error {
	if _, err := s.repo.GetMaster(ctx, salonID, masterID); err != nil {
		return err
	}

	seen := make(map[int]struct{}, 7)
	keep := make([]repository.ScheduleEntry, 0, 7)
	for _, entry := range entries {
		if !entry.Working || entry.DayOfWeek < 1 || entry.DayOfWeek > 7 {
			continue
		}
		if _, ok := seen[entry.DayOfWeek]; ok {
			continue
		}
		start, err := timeutil.ParseClock(entry.StartTime)
		if err != nil {
			continue
		}
		end, err := timeutil.ParseClock(entry.EndTime)
		if err != nil || start >= end {
			continue
		}
		seen[entry.DayOfWeek] = struct{}{}
		keep = append(keep, repository.ScheduleEntry{
			MasterID:  masterID,
			DayOfWeek: entry.DayOfWeek,
			StartTime: timeutil.FormatClock(start),
			EndTime:   timeutil.FormatClock(end),
		})
	}

	if err := s.repo.ReplaceSchedule(ctx, masterID, keep); err != nil {
		return fmt.Errorf("failed to replace schedule: %w", err)
	}
	s.log.WithSalon(salonID).Info("schedule replaced", "master_id", masterID, "working_days", len(keep))
	return nil
}

// SalonInfo is the compact catalog summary consumed by conversational
// front-ends: every service with its price and length, every master with the
// names of the services they offer.
type SalonInfo struct {
	Services []repository.Service
	Masters  []MasterInfo
}

// MasterInfo is one master with the names of their services.
type MasterInfo struct {
	Master   repository.Master
	Services []string
}

// GetSalonInfo assembles the full catalog summary of a salon.
func (s *Service) GetSalonInfo(ctx context.Context, salonID int64) (*SalonInfo, error) {
	services, err := s.repo.ListServices(ctx, salonID)
	if err != nil {
		return nil, err
	}
	masters, err := s.repo.ListMasters(ctx, salonID)
	if err != nil {
		return nil, err
	}

	info := &SalonInfo{Services: services, Masters: make([]MasterInfo, 0, len(masters))}
	for _, master := range masters {
		names, err := s.repo.ListServiceNamesOfMaster(ctx, master.ID)
		if err != nil {
			return nil, err
		}
		info.Masters = append(info.Masters, MasterInfo{Master: master, Services: names})
	}
	return info, nil
}

// ListClients returns the salon's clients.
func (s *Service) ListClients(ctx context.Context, salonID int64) ([]repository.Client, error) {
	return s.repo.ListClients(ctx, salonID)
}

// CreateClient adds a client. Without an external user id a synthetic
// negative one is assigned.
func (s *Service) CreateClient(ctx context.Context, salonID int64, externalUserID *int64, name string, phone *string) (*repository.Client, error) {
	return s.repo.CreateClient(ctx, salonID, externalUserID, name, phone)
}

// UpdateClient updates a client's name and phone.
func (s *Service) UpdateClient(ctx context.Context, salonID, id int64, name string, phone *string) (*repository.Client, error) {
	existing, err := s.repo.GetClient(ctx, salonID, id)
	if err != nil {
		return nil, err
	}
	existing.Name = name
	existing.Phone = phone
	return s.repo.UpdateClient(ctx, existing)
}

// DeleteClient removes a client of the salon.
func (s *Service) DeleteClient(ctx context.Context, salonID, id int64) error {
	return s.repo.DeleteClient(ctx, salonID, id)
}
