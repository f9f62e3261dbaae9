package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/pet-management/internal/api/metrics"
	"github.com/99minutos/pet-management/internal/core/domain"
	"github.com/99minutos/pet-management/internal/core/ports"
)

const (
	defaultTokenTTL = 30 * time.Minute
	tokenTypeBearer = "bearer"

	// dummyPassword is hashed once and compared against on unknown emails so
	// that login spends the same bcrypt work whether or not the account exists.
	dummyPassword = "pet-management-dummy-password"
)

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	codec    ports.TokenCodec
	tokenTTL time.Duration
	log      zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	codec ports.TokenCodec,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		codec:    codec,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates an account for email and returns a token for it.
// A duplicate email yields domain.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, password string) (*ports.AccessToken, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("register: hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &domain.User{
		Email:          email,
		HashedPassword: hash,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
			return nil, nil, domain.ErrEmailTaken
		}
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return token, user, nil
}

// Login verifies the credentials and returns a fresh token. Unknown email and
// wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AccessToken, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
			return nil, nil, fmt.Errorf("login: %w", err)
		}
		s.hasher.Verify(password, s.dummy())
		metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return token, user, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.AccessToken, error) {
	value, err := s.codec.Issue(user.Email, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.AccessToken{Value: value, Type: tokenTypeBearer, ExpiresIn: s.tokenTTL}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to prepare dummy password hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
