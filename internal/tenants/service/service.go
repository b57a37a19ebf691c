package service

import (
	"context"
	"crypto/subtle"

	"salon_booking_backend/internal/tenants/repository"
	"salon_booking_backend/internal/tenants/transport"
	"salon_booking_backend/platform/apperr"
	"salon_booking_backend/platform/logger"

	"golang.org/x/crypto/bcrypt"
)

// Repository is the persistence surface the registry needs.
type Repository interface {
	GetByBotToken(ctx context.Context, token string) (*repository.Salon, error)
	GetByLogin(ctx context.Context, loginName string) (*repository.Salon, error)
	GetByID(ctx context.Context, id int64) (*repository.Salon, error)
	List(ctx context.Context) ([]repository.Salon, error)
	Create(ctx context.Context, salon *repository.Salon) (*repository.Salon, error)
	Update(ctx context.Context, salon *repository.Salon) (*repository.Salon, error)
}

// SuperCredentials is the fixed platform-operator credential pair.
type SuperCredentials struct {
	Username string
	Password string
}

// Service implements tenant resolution and salon lifecycle operations.
type Service struct {
	repo            Repository
	super           SuperCredentials
	defaultTimezone string
	log             *logger.Logger
}

// New creates the tenant registry service.
func New(repo Repository, super SuperCredentials, defaultTimezone string, log *logger.Logger) *Service {
	return &Service{repo: repo, super: super, defaultTimezone: defaultTimezone, log: log}
}

// ResolveBotToken maps a bot token to an active salon. Unknown tokens and
// disabled salons both surface as forbidden so tokens cannot be probed.
func (s *Service) ResolveBotToken(ctx context.Context, token string) (*repository.Salon, error) {
	if token == "" {
		return nil, apperr.Forbidden("missing salon token")
	}

	salon, err := s.repo.GetByBotToken(ctx, token)
	if apperr.Is(err, apperr.KindNotFound) {
		s.log.AuthEvent("bot_token", "unknown", false, "token not recognized")
		return nil, apperr.Forbidden("invalid salon token")
	}
	if err != nil {
		return nil, err
	}

	if !salon.Active {
		s.log.AuthEvent("bot_token", salon.LoginName, false, "salon disabled")
		return nil, apperr.Forbidden("salon is disabled")
	}

	return salon, nil
}

// IsSuper checks a credential pair against the super-admin credentials in
// constant time.
func (s *Service) IsSuper(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.super.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.super.Password)) == 1
	return userOK && passOK
}

// AuthenticateAdmin resolves HTTP Basic credentials to a salon. bcrypt keeps
// the password comparison constant-time.
func (s *Service) AuthenticateAdmin(ctx context.Context, username, password string) (*repository.Salon, error) {
	salon, err := s.repo.GetByLogin(ctx, username)
	if apperr.Is(err, apperr.KindNotFound) {
		s.log.AuthEvent("admin_basic", username, false, "unknown login")
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(salon.AdminPasswordHash), []byte(password)) != nil {
		s.log.AuthEvent("admin_basic", username, false, "bad password")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if !salon.Active {
		s.log.AuthEvent("admin_basic", username, false, "salon disabled")
		return nil, apperr.Forbidden("salon is disabled")
	}

	s.log.AuthEvent("admin_basic", username, true, "")
	return salon, nil
}

// GetSalon loads a salon row for super-admin impersonation.
func (s *Service) GetSalon(ctx context.Context, id int64) (*repository.Salon, error) {
	return s.repo.GetByID(ctx, id)
}

// ListSalons returns every salon without secrets.
func (s *Service) ListSalons(ctx context.Context) ([]transport.SalonResponse, error) {
	salons, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]transport.SalonResponse, 0, len(salons))
	for i := range salons {
		responses = append(responses, transport.ToSalonResponse(&salons[i]))
	}
	return responses, nil
}

// CreateSalon registers a new tenant with a hashed admin password.
func (s *Service) CreateSalon(ctx context.Context, req transport.CreateSalonRequest) (*transport.SalonResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	saved, err := s.repo.Create(ctx, &repository.Salon{
		LoginName:         req.Name,
		DisplayTitle:      req.Title,
		BotToken:          req.Token,
		AdminPasswordHash: string(hash),
		Active:            true,
		Timezone:          s.defaultTimezone,
	})
	if err != nil {
		return nil, err
	}

	resp := transport.ToSalonResponse(saved)
	return &resp, nil
}

// UpdateSalon applies a partial update to a salon.
func (s *Service) UpdateSalon(ctx context.Context, id int64, req transport.UpdateSalonRequest) (*transport.SalonResponse, error) {
	salon, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		salon.DisplayTitle = *req.Title
	}
	if req.Token != nil {
		salon.BotToken = *req.Token
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
		}
		salon.AdminPasswordHash = string(hash)
	}
	if req.Active != nil {
		salon.Active = *req.Active
	}
	if req.Timezone != nil {
		salon.Timezone = *req.Timezone
	}

	saved, err := s.repo.Update(ctx, salon)
	if err != nil {
		return nil, err
	}

	resp := transport.ToSalonResponse(saved)
	return &resp, nil
}
