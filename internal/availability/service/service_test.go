package service

import (
	"context"
	"testing"
	"time"

	"salon_booking_backend/internal/availability/repository"
	"salon_booking_backend/platform/apperr"
	"salon_booking_backend/platform/logger"
	"salon_booking_backend/platform/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	duration   int
	masters    []int64
	windows    map[int64]*repository.ScheduleWindow
	masterBusy map[int64][]repository.Interval
	clientID   *int64
	clientBusy []repository.Interval
}

func (f *fakeStore) GetServiceDuration(_ context.Context, _, serviceID int64) (int, error) {
	if f.duration == 0 {
		return 0, apperr.NotFound("service not found")
	}
	return f.duration, nil
}

func (f *fakeStore) ListCandidateMasters(_ context.Context, _, _ int64, masterID *int64) ([]int64, error) {
	if masterID == nil {
		return f.masters, nil
	}
	for _, id := range f.masters {
		if id == *masterID {
			return []int64{id}, nil
		}
	}
	return []int64{}, nil
}

func (f *fakeStore) GetScheduleWindow(_ context.Context, masterID int64, _ int) (*repository.ScheduleWindow, error) {
	return f.windows[masterID], nil
}

func (f *fakeStore) ListMasterBusy(_ context.Context, masterID int64, _, _ time.Time) ([]repository.Interval, error) {
	return f.masterBusy[masterID], nil
}

func (f *fakeStore) ListClientBusy(_ context.Context, _ int64, _, _ time.Time) ([]repository.Interval, error) {
	return f.clientBusy, nil
}

func (f *fakeStore) FindClientID(_ context.Context, _, _ int64) (*int64, error) {
	return f.clientID, nil
}

func newTestService(store Store, now time.Time) *Service {
	svc := New(store, logger.New("test"), 15)
	svc.now = func(*time.Location) time.Time { return now }
	return svc
}

func at(date time.Time, h, m int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, time.UTC)
}

func times(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, timeutil.FormatClock(timeutil.MinutesOfDay(s.Start)))
	}
	return out
}

func window(startH, endH int) *repository.ScheduleWindow {
	return &repository.ScheduleWindow{StartMinutes: startH * 60, EndMinutes: endH * 60}
}

var futureDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

func TestAvailableSlotsWalksTheGrid(t *testing.T) {
	store := &fakeStore{
		duration: 60,
		masters:  []int64{7},
		windows:  map[int64]*repository.ScheduleWindow{7: window(10, 12)},
	}
	svc := newTestService(store, at(futureDate.AddDate(0, 0, -1), 12, 0))

	slots, err := svc.AvailableSlots(context.Background(), Query{SalonID: 1, ServiceID: 3, Date: futureDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00", "10:15", "10:30", "10:45", "11:00"}, times(slots))
	for _, s := range slots {
		assert.Equal(t, int64(7), s.MasterID)
	}
}

func TestAvailableSlotsTodayCutoff(t *testing.T) {
	store := &fakeStore{
		duration: 30,
		masters:  []int64{7},
		windows:  map[int64]*repository.ScheduleWindow{7: window(10, 12)},
	}
	// 10:25 rounds up to the 10:30 grid line; everything earlier is gone.
	svc := newTestService(store, at(futureDate, 10, 25))

	slots, err := svc.AvailableSlots(context.Background(), Query{SalonID: 1, ServiceID: 3, Date: futureDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"10:30", "10:45", "11:00", "11:15", "11:30"}, times(slots))
}

func TestAvailableSlotsTouchingAppointmentsAreBookable(t *testing.T) {
	store := &fakeStore{
		duration: 60,
		masters:  []int64{7},
		windows:  map[int64]*repository.ScheduleWindow{7: window(9, 13)},
		masterBusy: map[int64][]repository.Interval{
			7: {{Start: at(futureDate, 11, 0), End: at(futureDate, 12, 0)}},
		},
	}
	svc := newTestService(store, at(futureDate.AddDate(0, 0, -1), 12, 0))

	slots, err := svc.AvailableSlots(context.Background(), Query{SalonID: 1, ServiceID: 3, Date: futureDate})
	require.NoError(t, err)

	got := times(slots)
	assert.Contains(t, got, "10:00", "slot ending exactly at a busy start must stay bookable")
	assert.Contains(t, got, "12:00", "slot starting exactly at a busy end must stay bookable")
	assert.NotContains(t, got, "10:15")
	assert.NotContains(t, got, "11:00")
	assert.NotContains(t, got, "11:45")
}

func TestAvailableSlotsClientBusyAcrossMasters(t *testing.T) {
	clientID := int64(42)
	store := &fakeStore{
		duration: 60,
		masters:  []int64{7},
		windows:  map[int64]*repository.ScheduleWindow{7: window(10, 13)},
		clientID: &clientID,
		// The client is booked with a different master at 11:00.
		clientBusy: []repository.Interval{{Start: at(futureDate, 11, 0), End: at(futureDate, 12, 0)}},
	}
	svc := newTestService(store, at(futureDate.AddDate(0, 0, -1), 12, 0))

	externalID := int64(100500)
	slots, err := svc.AvailableSlots(context.Background(), Query{
		SalonID: 1, ServiceID: 3, Date: futureDate, ExternalUserID: &externalID,
	})
	require.NoError(t, err)

	got := times(slots)
	assert.Contains(t, got, "10:00")
	assert.Contains(t, got, "12:00")
	assert.NotContains(t, got, "10:30")
	assert.NotContains(t, got, "11:30")
}

func TestAvailableSlotsUnknownService(t *testing.T) {
	svc := newTestService(&fakeStore{}, at(futureDate, 9, 0))

	_, err := svc.AvailableSlots(context.Background(), Query{SalonID: 1, ServiceID: 3, Date: futureDate})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestAvailableSlotsForeignMasterYieldsEmpty(t *testing.T) {
	store := &fakeStore{
		duration: 30,
		masters:  []int64{7},
		windows:  map[int64]*repository.ScheduleWindow{7: window(10, 12)},
	}
	svc := newTestService(store, at(futureDate.AddDate(0, 0, -1), 12, 0))

	other := int64(99)
	slots, err := svc.AvailableSlots(context.Background(), Query{
		SalonID: 1, ServiceID: 3, Date: futureDate, MasterID: &other,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsMasterWithoutScheduleSkipped(t *testing.T) {
	store := &fakeStore{
		duration: 30,
		masters:  []int64{7, 8},
		windows:  map[int64]*repository.ScheduleWindow{8: window(10, 11)},
	}
	svc := newTestService(store, at(futureDate.AddDate(0, 0, -1), 12, 0))

	slots, err := svc.AvailableSlots(context.Background(), Query{SalonID: 1, ServiceID: 3, Date: futureDate})
	require.NoError(t, err)

	for _, s := range slots {
		assert.Equal(t, int64(8), s.MasterID)
	}
	assert.NotEmpty(t, slots)
}

func TestActiveDaysInvalidMonth(t *testing.T) {
	svc := newTestService(&fakeStore{duration: 30}, at(futureDate, 9, 0))

	for _, month := range []int{0, 13, -2} {
		days, err := svc.ActiveDaysInMonth(context.Background(), MonthQuery{
			SalonID: 1, ServiceID: 3, Year: 2026, Month: month,
		})
		require.NoError(t, err)
		assert.Equal(t, []int{}, days)
	}
}

func TestActiveDaysSkipsPastDays(t *testing.T) {
	store := &fakeStore{
		duration: 30,
		masters:  []int64{7},
		windows:  map[int64]*repository.ScheduleWindow{7: window(10, 12)},
	}
	// Every weekday works, so every remaining day of September qualifies.
	svc := newTestService(store, at(time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), 9, 0))

	days, err := svc.ActiveDaysInMonth(context.Background(), MonthQuery{
		SalonID: 1, ServiceID: 3, Year: 2026, Month: 9,
	})
	require.NoError(t, err)

	require.NotEmpty(t, days)
	assert.Equal(t, 20, days[0], "days before today must be skipped")
	assert.Equal(t, 30, days[len(days)-1])
	assert.Len(t, days, 11)
}

func TestActiveDaysUnknownServiceFails(t *testing.T) {
	svc := newTestService(&fakeStore{}, at(futureDate, 9, 0))

	_, err := svc.ActiveDaysInMonth(context.Background(), MonthQuery{
		SalonID: 1, ServiceID: 3, Year: 2026, Month: 9,
	})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
