package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"salon_booking_backend/internal/availability/repository"
	"salon_booking_backend/platform/logger"
	"salon_booking_backend/platform/timeutil"

	"golang.org/x/sync/errgroup"
)

// activeDaysConcurrency caps the per-day fan-out of the month scan.
const activeDaysConcurrency = 4

// Store defines the read-side queries the availability engine needs.
type Store interface {
	GetServiceDuration(ctx context.Context, salonID, serviceID int64) (int, error)
	ListCandidateMasters(ctx context.Context, salonID, serviceID int64, masterID *int64) ([]int64, error)
	GetScheduleWindow(ctx context.Context, masterID int64, dayOfWeek int) (*repository.ScheduleWindow, error)
	ListMasterBusy(ctx context.Context, masterID int64, from, to time.Time) ([]repository.Interval, error)
	ListClientBusy(ctx context.Context, clientID int64, from, to time.Time) ([]repository.Interval, error)
	FindClientID(ctx context.Context, salonID, externalUserID int64) (*int64, error)
}

// Query selects the slots to compute. Date carries the wall-clock day in the
// salon's timezone; Location is that timezone, used only to read the clock.
type Query struct {
	SalonID        int64
	ServiceID      int64
	Date           time.Time
	MasterID       *int64
	ExternalUserID *int64
	Location       *time.Location
}

// MonthQuery selects a whole month to scan for bookable days.
type MonthQuery struct {
	SalonID        int64
	ServiceID      int64
	Year           int
	Month          int
	MasterID       *int64
	ExternalUserID *int64
	Location       *time.Location
}

// Slot is one bookable starting time for one master.
type Slot struct {
	Start    time.Time
	MasterID int64
}

// Service computes free slots from schedules and existing appointments.
type Service struct {
	repo Store
	log  *logger.Logger
	grid int

	// now is swapped in tests to pin the clock.
	now func(loc *time.Location) time.Time
}

// New creates an availability service with the given slot grid step.
func New(repo Store, log *logger.Logger, gridMinutes int) *Service {
	return &Service{repo: repo, log: log, grid: gridMinutes, now: timeutil.WallClockNow}
}

// AvailableSlots returns every free slot for the service on the given day,
// sorted by time then master. Unknown service answers not-found; an unknown
// or foreign master simply yields no slots.
func (s *Service) AvailableSlots(ctx context.Context, q Query) ([]Slot, error) {
	duration, err := s.repo.GetServiceDuration(ctx, q.SalonID, q.ServiceID)
	if err != nil {
		return nil, err
	}

	clientID, err := s.resolveClient(ctx, q.SalonID, q.ExternalUserID)
	if err != nil {
		return nil, err
	}

	return s.slotsForDate(ctx, q, duration, clientID, q.Date)
}

// ActiveDaysInMonth returns the 1-based days of (year, month) that still
// have at least one bookable slot. Days already past are skipped and an
// invalid month yields an empty list rather than an error.
func (s *Service) ActiveDaysInMonth(ctx context.Context, q MonthQuery) ([]int, error) {
	days := timeutil.DaysInMonth(q.Year, q.Month)
	if days == 0 {
		return []int{}, nil
	}

	duration, err := s.repo.GetServiceDuration(ctx, q.SalonID, q.ServiceID)
	if err != nil {
		return nil, err
	}
	clientID, err := s.resolveClient(ctx, q.SalonID, q.ExternalUserID)
	if err != nil {
		return nil, err
	}

	today := s.now(q.Location).Truncate(24 * time.Hour)

	var mu sync.Mutex
	active := make([]int, 0, days)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(activeDaysConcurrency)

	for day := 1; day <= days; day++ {
		date := time.Date(q.Year, time.Month(q.Month), day, 0, 0, 0, 0, time.UTC)
		if date.Before(today) {
			continue
		}

		group.Go(func() error {
			slots, err := s.slotsForDate(groupCtx, Query{
				SalonID:        q.SalonID,
				ServiceID:      q.ServiceID,
				MasterID:       q.MasterID,
				ExternalUserID: q.ExternalUserID,
				Location:       q.Location,
			}, duration, clientID, date)
			if err != nil {
				return err
			}
			if len(slots) > 0 {
				mu.Lock()
				active = append(active, date.Day())
				mu.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Ints(active)
	return active, nil
}

func (s *Service) resolveClient(ctx context.Context, salonID int64, externalUserID *int64) (*int64, error) {
	if externalUserID == nil {
		return nil, nil
	}
	return s.repo.FindClientID(ctx, salonID, *externalUserID)
}

// slotsForDate walks the grid of every candidate master's working window and
// keeps the starts whose interval touches no existing appointment.
func (s *Service) slotsForDate(ctx context.Context, q Query, duration int, clientID *int64, date time.Time) ([]Slot, error) {
	masterIDs, err := s.repo.ListCandidateMasters(ctx, q.SalonID, q.ServiceID, q.MasterID)
	if err != nil {
		return nil, err
	}
	if len(masterIDs) == 0 {
		return []Slot{}, nil
	}

	now := s.now(q.Location)
	today := timeutil.SameDate(date, now)
	dayStart, dayEnd := timeutil.DayBounds(date)

	var clientBusy []repository.Interval
	if clientID != nil {
		clientBusy, err = s.repo.ListClientBusy(ctx, *clientID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
	}

	slots := make([]Slot, 0)
	for _, masterID := range masterIDs {
		window, err := s.repo.GetScheduleWindow(ctx, masterID, timeutil.ISOWeekday(date))
		if err != nil {
			return nil, err
		}
		if window == nil {
			continue
		}

		busy, err := s.repo.ListMasterBusy(ctx, masterID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		busy = append(busy, clientBusy...)

		windowStart := timeutil.CombineDateClock(date, window.StartMinutes)
		windowEnd := timeutil.CombineDateClock(date, window.EndMinutes)

		start := windowStart
		if today {
			cutoff := timeutil.RoundUpToGrid(now, s.grid)
			if cutoff.After(start) {
				start = cutoff
			}
		}

		step := time.Duration(s.grid) * time.Minute
		length := time.Duration(duration) * time.Minute
		for t := start; !t.Add(length).After(windowEnd); t = t.Add(step) {
			if today && !t.After(now) {
				continue
			}
			if hasConflict(t, t.Add(length), busy) {
				continue
			}
			slots = append(slots, Slot{Start: t, MasterID: masterID})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Start.Equal(slots[j].Start) {
			return slots[i].MasterID < slots[j].MasterID
		}
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots, nil
}

func hasConflict(start, end time.Time, busy []repository.Interval) bool {
	for _, b := range busy {
		if timeutil.Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}
