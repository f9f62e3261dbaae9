package config

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/99minutos/pet-management/internal/infrastructure/security"
)

type Config struct {
	Port     string `env:"PORT,      default=8000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
}

type AuthConfig struct {
	SecretKey          string `env:"SECRET_KEY,                  default=fallback-secret-key"`
	Algorithm          string `env:"ALGORITHM,                   default=HS256"`
	TokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=30"`
	BcryptCost         int    `env:"BCRYPT_COST,                 default=10"`
}

// TokenTTL returns the access token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenExpireMinutes) * time.Minute
}

type MongoConfig struct {
	// URL is left without a default so Validate can tell an explicit value
	// from the local fallback.
	URL      string `env:"MONGODB_URL"`
	Database string `env:"DATABASE_NAME,     default=pet_management"`
	TLS      bool   `env:"MONGODB_TLS,       default=false"`
	FailFast bool   `env:"MONGODB_FAIL_FAST, default=false"`
}

const defaultMongoURL = "mongodb://localhost:27017"

// URI returns the connection string, falling back to a local instance.
func (m MongoConfig) URI() string {
	if m.URL == "" {
		return defaultMongoURL
	}
	return m.URL
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks cross-field constraints go-envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY must not be empty"))
	}
	if !slices.Contains(security.SupportedAlgorithms, c.Auth.Algorithm) {
		errs = append(errs, fmt.Errorf("ALGORITHM %q is not one of %v", c.Auth.Algorithm, security.SupportedAlgorithms))
	}
	if c.Auth.TokenExpireMinutes <= 0 {
		errs = append(errs, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", c.Auth.TokenExpireMinutes))
	}
	if c.Mongo.TLS && c.Mongo.URL == "" {
		errs = append(errs, errors.New("MONGODB_URL is required when MONGODB_TLS is enabled"))
	}
	if c.Mongo.Database == "" {
		errs = append(errs, errors.New("DATABASE_NAME must not be empty"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
