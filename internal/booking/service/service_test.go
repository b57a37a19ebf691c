package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"salon_booking_backend/internal/booking/repository"
	"salon_booking_backend/platform/apperr"
	"salon_booking_backend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	services map[int64]*repository.BookedService
	masters  map[int64]*repository.BookedMaster
	clients  map[int64]int64 // external user id → client id

	createErr    error
	lastCreate   *repository.CreateParams
	lastUpdate   *repository.UpdateParams
	upsertPhones map[int64]string
}

func (f *fakeStore) GetService(_ context.Context, _, serviceID int64) (*repository.BookedService, error) {
	if svc, ok := f.services[serviceID]; ok {
		return svc, nil
	}
	return nil, apperr.NotFound("service not found")
}

func (f *fakeStore) GetMaster(_ context.Context, _, masterID int64) (*repository.BookedMaster, error) {
	if m, ok := f.masters[masterID]; ok {
		return m, nil
	}
	return nil, apperr.NotFound("master not found")
}

func (f *fakeStore) FindServiceByName(_ context.Context, _ int64, name string) (*repository.BookedService, error) {
	for _, svc := range f.services {
		if strings.Contains(strings.ToLower(svc.Name), strings.ToLower(name)) {
			return svc, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindMasterByName(_ context.Context, _ int64, name string) (*repository.BookedMaster, error) {
	for _, m := range f.masters {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(name)) {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindAnyMasterForService(_ context.Context, _, _ int64) (*repository.BookedMaster, error) {
	var first *repository.BookedMaster
	for _, m := range f.masters {
		if first == nil || m.ID < first.ID {
			first = m
		}
	}
	return first, nil
}

func (f *fakeStore) GetClientID(_ context.Context, _, clientID int64) (int64, error) {
	for _, id := range f.clients {
		if id == clientID {
			return id, nil
		}
	}
	return 0, apperr.NotFound("client not found")
}

func (f *fakeStore) UpsertClient(_ context.Context, _, externalUserID int64, _ string) (int64, error) {
	if id, ok := f.clients[externalUserID]; ok {
		return id, nil
	}
	id := int64(len(f.clients) + 1)
	if f.clients == nil {
		f.clients = map[int64]int64{}
	}
	f.clients[externalUserID] = id
	return id, nil
}

func (f *fakeStore) UpsertClientPhone(_ context.Context, _, externalUserID int64, phone string) error {
	if f.upsertPhones == nil {
		f.upsertPhones = map[int64]string{}
	}
	f.upsertPhones[externalUserID] = phone
	return nil
}

func (f *fakeStore) Create(_ context.Context, params repository.CreateParams) (*repository.Appointment, error) {
	f.lastCreate = &params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &repository.Appointment{
		ID:        10,
		SalonID:   params.SalonID,
		ClientID:  params.ClientID,
		MasterID:  params.MasterID,
		ServiceID: params.ServiceID,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
	}, nil
}

func (f *fakeStore) Update(_ context.Context, params repository.UpdateParams) (*repository.Appointment, error) {
	f.lastUpdate = &params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &repository.Appointment{ID: params.ID, SalonID: params.SalonID}, nil
}

func (f *fakeStore) Delete(_ context.Context, _, _ int64) error { return nil }

func (f *fakeStore) GetDetail(_ context.Context, salonID, id int64) (*repository.Detail, error) {
	return &repository.Detail{Appointment: repository.Appointment{ID: id, SalonID: salonID}}, nil
}

func (f *fakeStore) ListForDay(_ context.Context, _ int64, _, _ time.Time) ([]repository.Detail, error) {
	return nil, nil
}

func (f *fakeStore) ListUpcomingForClient(_ context.Context, _, _ int64, _ time.Time) ([]repository.Detail, error) {
	return nil, nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		services: map[int64]*repository.BookedService{
			3: {ID: 3, Name: "Маникюр с покрытием Gel", DurationMinutes: 90},
			4: {ID: 4, Name: "Женская стрижка + укладка", DurationMinutes: 60},
		},
		masters: map[int64]*repository.BookedMaster{
			7: {ID: 7, Name: "Алина Соколова"},
			8: {ID: 8, Name: "Елена Волкова"},
		},
	}
}

func newTestService(store Store) *Service {
	return New(store, logger.New("test"))
}

var start = time.Date(2026, 9, 10, 11, 0, 0, 0, time.UTC)

func TestCreateFromBotComputesEndAndEnforcesSchedule(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	booked, err := svc.CreateFromBot(context.Background(), BotCreateInput{
		SalonID: 1, ExternalUserID: 500, UserName: "Анна",
		ServiceID: 3, MasterID: 7, StartTime: start,
	})
	require.NoError(t, err)

	assert.Equal(t, "Маникюр с покрытием Gel", booked.ServiceName)
	assert.Equal(t, "Алина Соколова", booked.MasterName)
	assert.Equal(t, start, booked.StartTime)

	require.NotNil(t, store.lastCreate)
	assert.Equal(t, start.Add(90*time.Minute), store.lastCreate.EndTime)
	assert.True(t, store.lastCreate.EnforceSchedule, "bot bookings must respect working hours")
}

func TestCreateFromBotUnknownCatalogIDs(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.CreateFromBot(context.Background(), BotCreateInput{
		SalonID: 1, ExternalUserID: 500, UserName: "Анна",
		ServiceID: 99, MasterID: 7, StartTime: start,
	})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.CreateFromBot(context.Background(), BotCreateInput{
		SalonID: 1, ExternalUserID: 500, UserName: "Анна",
		ServiceID: 3, MasterID: 99, StartTime: start,
	})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCreateFromBotPropagatesConflict(t *testing.T) {
	store := newFakeStore()
	store.createErr = apperr.Conflict("slot already taken")
	svc := newTestService(store)

	_, err := svc.CreateFromBot(context.Background(), BotCreateInput{
		SalonID: 1, ExternalUserID: 500, UserName: "Анна",
		ServiceID: 3, MasterID: 7, StartTime: start,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "slot already taken", err.Error())
}

func TestCreateFromAdminSkipsScheduleCheckAndNeedsClient(t *testing.T) {
	store := newFakeStore()
	store.clients = map[int64]int64{500: 42}
	svc := newTestService(store)

	_, err := svc.CreateFromAdmin(context.Background(), AdminCreateInput{
		SalonID: 1, ClientID: 42, MasterID: 7, ServiceID: 4, StartTime: start,
	})
	require.NoError(t, err)

	require.NotNil(t, store.lastCreate)
	assert.False(t, store.lastCreate.EnforceSchedule, "admin bookings may fall outside working hours")
	assert.Equal(t, start.Add(60*time.Minute), store.lastCreate.EndTime)

	_, err = svc.CreateFromAdmin(context.Background(), AdminCreateInput{
		SalonID: 1, ClientID: 77, MasterID: 7, ServiceID: 4, StartTime: start,
	})
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "missing client must fail, admin path never creates one")
}

func TestUpdateFromAdminRecomputesEnd(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.UpdateFromAdmin(context.Background(), AdminUpdateInput{
		ID: 10, SalonID: 1, MasterID: 8, ServiceID: 3, StartTime: start,
	})
	require.NoError(t, err)

	require.NotNil(t, store.lastUpdate)
	assert.Equal(t, start.Add(90*time.Minute), store.lastUpdate.EndTime)
	assert.False(t, store.lastUpdate.EnforceSchedule)
}

func TestSetClientPhoneNormalizes(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	require.NoError(t, svc.SetClientPhone(context.Background(), 1, 500, "8 916 123-45-67"))
	assert.Equal(t, "+79161234567", store.upsertPhones[500])

	err := svc.SetClientPhone(context.Background(), 1, 500, "   ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
