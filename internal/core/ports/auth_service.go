package ports

import (
	"context"
	"time"

	"github.com/99minutos/pet-management/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords with a salted, slow hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hashed. It never errors;
	// malformed hashes simply do not match.
	Verify(plaintext, hashed string) bool
}

// TokenCodec issues and verifies signed, time-limited bearer tokens.
type TokenCodec interface {
	Issue(subject string, ttl time.Duration) (string, error)
	// Verify returns the subject claim or domain.ErrInvalidToken.
	Verify(token string) (string, error)
}

// AccessToken is the credential handed to a client after register or login.
type AccessToken struct {
	Value     string
	Type      string
	ExpiresIn time.Duration
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*AccessToken, *domain.User, error)
	Login(ctx context.Context, email, password string) (*AccessToken, *domain.User, error)
}

// IdentityResolver turns a bearer token into the authenticated user.
// Every failure is reported as domain.ErrUnauthorized.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
