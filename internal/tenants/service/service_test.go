package service

import (
	"context"
	"testing"

	"salon_booking_backend/internal/tenants/repository"
	"salon_booking_backend/platform/apperr"
	"salon_booking_backend/platform/logger"

	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	byToken map[string]*repository.Salon
	byLogin map[string]*repository.Salon
}

func (f *fakeRepo) GetByBotToken(_ context.Context, token string) (*repository.Salon, error) {
	if s, ok := f.byToken[token]; ok {
		return s, nil
	}
	return nil, apperr.NotFound("salon not found")
}

func (f *fakeRepo) GetByLogin(_ context.Context, login string) (*repository.Salon, error) {
	if s, ok := f.byLogin[login]; ok {
		return s, nil
	}
	return nil, apperr.NotFound("salon not found")
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*repository.Salon, error) {
	return nil, apperr.NotFound("salon not found")
}

func (f *fakeRepo) List(_ context.Context) ([]repository.Salon, error) { return nil, nil }

func (f *fakeRepo) Create(_ context.Context, s *repository.Salon) (*repository.Salon, error) {
	return s, nil
}

func (f *fakeRepo) Update(_ context.Context, s *repository.Salon) (*repository.Salon, error) {
	return s, nil
}

func newTestService(repo Repository) *Service {
	return New(repo, SuperCredentials{Username: "root", Password: "secret"}, "Europe/Moscow", logger.New("test"))
}

func activeSalon(t *testing.T, password string) *repository.Salon {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &repository.Salon{
		ID:                1,
		LoginName:         "salon_elegans",
		DisplayTitle:      "Элеганс",
		BotToken:          "tok-1",
		AdminPasswordHash: string(hash),
		Active:            true,
	}
}

func TestResolveBotToken(t *testing.T) {
	salon := activeSalon(t, "pw")
	disabled := *salon
	disabled.BotToken = "tok-off"
	disabled.Active = false

	svc := newTestService(&fakeRepo{byToken: map[string]*repository.Salon{
		"tok-1":   salon,
		"tok-off": &disabled,
	}})

	if _, err := svc.ResolveBotToken(context.Background(), "tok-1"); err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}

	for name, token := range map[string]string{
		"empty token":    "",
		"unknown token":  "nope",
		"disabled salon": "tok-off",
	} {
		_, err := svc.ResolveBotToken(context.Background(), token)
		if !apperr.Is(err, apperr.KindForbidden) {
			t.Fatalf("%s: expected forbidden, got %v", name, err)
		}
	}
}

func TestAuthenticateAdmin(t *testing.T) {
	salon := activeSalon(t, "correct-horse")
	svc := newTestService(&fakeRepo{byLogin: map[string]*repository.Salon{
		salon.LoginName: salon,
	}})

	got, err := svc.AuthenticateAdmin(context.Background(), "salon_elegans", "correct-horse")
	if err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}
	if got.ID != salon.ID {
		t.Fatalf("resolved wrong salon: %d", got.ID)
	}

	if _, err := svc.AuthenticateAdmin(context.Background(), "salon_elegans", "wrong"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("bad password: expected unauthorized, got %v", err)
	}
	if _, err := svc.AuthenticateAdmin(context.Background(), "ghost", "correct-horse"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("unknown login: expected unauthorized, got %v", err)
	}
}

func TestAuthenticateAdminDisabledSalon(t *testing.T) {
	salon := activeSalon(t, "pw")
	salon.Active = false
	svc := newTestService(&fakeRepo{byLogin: map[string]*repository.Salon{
		salon.LoginName: salon,
	}})

	if _, err := svc.AuthenticateAdmin(context.Background(), "salon_elegans", "pw"); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("disabled salon: expected forbidden, got %v", err)
	}
}

func TestIsSuper(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	if !svc.IsSuper("root", "secret") {
		t.Fatal("correct super credentials rejected")
	}
	if svc.IsSuper("root", "wrong") || svc.IsSuper("admin", "secret") {
		t.Fatal("wrong super credentials accepted")
	}
}
