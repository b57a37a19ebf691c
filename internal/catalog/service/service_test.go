package service

import (
	"context"
	"testing"

	"salon_booking_backend/internal/catalog/repository"
	"salon_booking_backend/platform/apperr"
	"salon_booking_backend/platform/logger"
)

type fakeStore struct {
	Store

	master        *repository.Master
	schedule      []repository.ScheduleEntry
	replaced      []repository.ScheduleEntry
	salonServices map[int64]struct{}
	createdWith   []int64
}

func (f *fakeStore) GetMaster(_ context.Context, _, id int64) (*repository.Master, error) {
	if f.master != nil && f.master.ID == id {
		return f.master, nil
	}
	return nil, apperr.NotFound("master not found")
}

func (f *fakeStore) ListSchedule(_ context.Context, _ int64) ([]repository.ScheduleEntry, error) {
	return f.schedule, nil
}

func (f *fakeStore) ReplaceSchedule(_ context.Context, _ int64, entries []repository.ScheduleEntry) error {
	f.replaced = entries
	return nil
}

func (f *fakeStore) CountServicesInSalon(_ context.Context, _ int64, ids []int64) (int, error) {
	count := 0
	for _, id := range ids {
		if _, ok := f.salonServices[id]; ok {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateMaster(_ context.Context, master *repository.Master, serviceIDs []int64) (*repository.Master, error) {
	f.createdWith = serviceIDs
	return master, nil
}

func newTestService(store Store) *Service {
	return New(store, logger.New("test"))
}

func TestGetWeekScheduleAlwaysSevenDays(t *testing.T) {
	store := &fakeStore{
		master: &repository.Master{ID: 7, SalonID: 1},
		schedule: []repository.ScheduleEntry{
			{MasterID: 7, DayOfWeek: 1, StartTime: "10:00", EndTime: "19:00"},
			{MasterID: 7, DayOfWeek: 3, StartTime: "10:00", EndTime: "19:00"},
		},
	}
	svc := newTestService(store)

	week, err := svc.GetWeekSchedule(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(week))
	}
	for i, day := range week {
		if day.DayOfWeek != i+1 {
			t.Fatalf("entry %d has day %d", i, day.DayOfWeek)
		}
	}
	if !week[0].Working || week[0].StartTime != "10:00" {
		t.Fatalf("monday should be a working day: %+v", week[0])
	}
	if week[1].Working || week[1].StartTime != "" {
		t.Fatalf("tuesday should be empty: %+v", week[1])
	}
}

func TestPutWeekScheduleSkipsInvalidEntries(t *testing.T) {
	store := &fakeStore{master: &repository.Master{ID: 7, SalonID: 1}}
	svc := newTestService(store)

	err := svc.PutWeekSchedule(context.Background(), 1, 7, []DaySchedule{
		{DayOfWeek: 1, Working: true, StartTime: "10:00", EndTime: "19:00"},
		{DayOfWeek: 2, Working: true, StartTime: "late", EndTime: "19:00"},
		{DayOfWeek: 3, Working: true, StartTime: "19:00", EndTime: "10:00"},
		{DayOfWeek: 4, Working: false, StartTime: "10:00", EndTime: "19:00"},
		{DayOfWeek: 5, Working: true, StartTime: "12:00", EndTime: "12:00"},
		{DayOfWeek: 6, Working: true, StartTime: "09:00", EndTime: "21:00"},
		{DayOfWeek: 7, Working: false},
	})
	if err != nil {
		t.Fatalf("call must succeed for the valid entries: %v", err)
	}

	if len(store.replaced) != 2 {
		t.Fatalf("expected 2 surviving entries, got %d: %+v", len(store.replaced), store.replaced)
	}
	if store.replaced[0].DayOfWeek != 1 || store.replaced[1].DayOfWeek != 6 {
		t.Fatalf("wrong days survived: %+v", store.replaced)
	}
}

func TestPutWeekScheduleUnknownMaster(t *testing.T) {
	svc := newTestService(&fakeStore{})

	err := svc.PutWeekSchedule(context.Background(), 1, 7, nil)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateMasterRejectsForeignServices(t *testing.T) {
	store := &fakeStore{salonServices: map[int64]struct{}{3: {}, 4: {}}}
	svc := newTestService(store)

	_, err := svc.CreateMaster(context.Background(), &repository.Master{SalonID: 1, Name: "Мария Ким"}, []int64{3, 99})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("foreign service id must surface as not found, got %v", err)
	}

	_, err = svc.CreateMaster(context.Background(), &repository.Master{SalonID: 1, Name: "Мария Ким"}, []int64{3, 4, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.createdWith) != 2 {
		t.Fatalf("duplicate service ids must collapse, got %v", store.createdWith)
	}
}
