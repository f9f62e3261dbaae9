package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/99minutos/pet-management/internal/core/domain"
	"github.com/99minutos/pet-management/internal/core/ports"
)

// IdentityService resolves bearer tokens to users. It never tells the caller
// which step failed.
type IdentityService struct {
	codec ports.TokenCodec
	users ports.UserRepository
	log   zerolog.Logger
}

func NewIdentityService(codec ports.TokenCodec, users ports.UserRepository, log zerolog.Logger) *IdentityService {
	return &IdentityService{codec: codec, users: users, log: log}
}

func (s *IdentityService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	email, err := s.codec.Verify(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Msg("identity lookup failed")
		}
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
