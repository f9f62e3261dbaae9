package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/pet-management/internal/core/domain"
)

// SupportedAlgorithms lists the HMAC algorithms accepted for signing.
var SupportedAlgorithms = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// JWTCodec implements ports.TokenCodec with HMAC-signed JWTs carrying the
// subject in "sub" and the expiry in "exp".
type JWTCodec struct {
	key    []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// Option customises a JWTCodec.
type Option func(*JWTCodec)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(c *JWTCodec) { c.now = now }
}

func NewJWTCodec(secret, algorithm string, opts ...Option) (*JWTCodec, error) {
	if secret == "" {
		return nil, errors.New("jwt: signing key must not be empty")
	}

	var method jwt.SigningMethod
	for _, alg := range SupportedAlgorithms {
		if alg == algorithm {
			method = jwt.GetSigningMethod(alg)
		}
	}
	if method == nil {
		return nil, fmt.Errorf("jwt: unsupported algorithm %q", algorithm)
	}

	c := &JWTCodec{key: []byte(secret), method: method, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *JWTCodec) Issue(subject string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return c.key, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
