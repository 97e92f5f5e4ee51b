package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuslink/association-api/internal/api/metrics"
	"github.com/campuslink/association-api/internal/core/domain"
	"github.com/campuslink/association-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo       ports.UserRepository
	tokens     ports.TokenService
	throttle   ports.LoginThrottle
	bcryptCost int
	log        zerolog.Logger
}

// NewAuthService builds an AuthService. throttle may be nil, in which
// case failed-attempt limiting is disabled.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, throttle ports.LoginThrottle, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, tokens: tokens, throttle: throttle, bcryptCost: bcryptCost, log: log}
}

// Register creates a user account. The raw password exists only for the
// duration of the hash computation; only the bcrypt hash is stored.
// Email uniqueness is enforced by the repository's unique index.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	roles, err := domain.ParseRoles(input.Roles)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_role").Inc()
		return nil, err
	}

	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
		Roles:        roles,
		City:         input.City,
		PhoneNumber:  input.PhoneNumber,
		BirthDate:    input.BirthDate,
		Avatar:       input.Avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login authenticates a user and issues a signed token carrying a role
// snapshot. Unknown email and wrong password both map to
// ErrInvalidCredentials so the caller cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if s.throttle != nil {
		locked, err := s.throttle.TooMany(ctx, email)
		if err != nil {
			// Throttle backend outage degrades open.
			s.log.Warn().Err(err).Msg("login throttle unavailable")
		} else if locked {
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()
	return token, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Fail(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}
