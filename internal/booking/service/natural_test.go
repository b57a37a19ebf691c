package service

import (
	"context"
	"testing"
	"time"

	"salon_booking_backend/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func naturalInput() NaturalInput {
	return NaturalInput{
		SalonID:         1,
		ExternalUserID:  500,
		UserName:        "Анна",
		ServiceName:     "маникюр",
		AppointmentDate: "2026-09-10",
		AppointmentTime: "11:00",
	}
}

func TestCreateNaturalResolvesBySubstring(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	in := naturalInput()
	in.MasterName = "соколова"

	booked, err := svc.CreateNatural(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "Маникюр с покрытием Gel", booked.ServiceName)
	assert.Equal(t, "Алина Соколова", booked.MasterName)

	require.NotNil(t, store.lastCreate)
	wantStart := time.Date(2026, 9, 10, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, wantStart, store.lastCreate.StartTime)
	assert.Equal(t, wantStart.Add(90*time.Minute), store.lastCreate.EndTime)
	assert.True(t, store.lastCreate.EnforceSchedule)
}

func TestCreateNaturalPicksAnyMasterWhenUnnamed(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	booked, err := svc.CreateNatural(context.Background(), naturalInput())
	require.NoError(t, err)
	assert.NotEmpty(t, booked.MasterName)
}

func TestCreateNaturalUnknownNames(t *testing.T) {
	svc := newTestService(newFakeStore())

	in := naturalInput()
	in.ServiceName = "татуировка"
	_, err := svc.CreateNatural(context.Background(), in)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "unknown service name must answer not found")

	in = naturalInput()
	in.MasterName = "Борис"
	_, err = svc.CreateNatural(context.Background(), in)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "unknown master name must answer not found")
}

func TestCreateNaturalRejectsBadDateAndTime(t *testing.T) {
	svc := newTestService(newFakeStore())

	in := naturalInput()
	in.AppointmentDate = "10.09.2026"
	_, err := svc.CreateNatural(context.Background(), in)
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))

	in = naturalInput()
	in.AppointmentTime = "пол-одиннадцатого"
	_, err = svc.CreateNatural(context.Background(), in)
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
}
