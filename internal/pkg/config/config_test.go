package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/99minutos/pet-management/internal/infrastructure/security"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected port 8000, got %q", cfg.Port)
	}
	if cfg.Auth.SecretKey != "fallback-secret-key" || cfg.Auth.Algorithm != "HS256" {
		t.Errorf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Auth.TokenTTL() != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %v", cfg.Auth.TokenTTL())
	}
	if cfg.Mongo.URI() != "mongodb://localhost:27017" {
		t.Errorf("unexpected mongo uri: %q", cfg.Mongo.URI())
	}
	if cfg.Mongo.Database != "pet_management" {
		t.Errorf("unexpected database: %q", cfg.Mongo.Database)
	}
	if cfg.Mongo.TLS || cfg.Mongo.FailFast {
		t.Errorf("expected TLS and fail-fast off by default")
	}
	if !cfg.IsDevelopment() {
		t.Errorf("expected development env by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SECRET_KEY":                  "s3cret",
		"ALGORITHM":                   "HS512",
		"ACCESS_TOKEN_EXPIRE_MINUTES": "5",
		"MONGODB_URL":                 "mongodb+srv://cluster.example.net",
		"MONGODB_TLS":                 "true",
		"DATABASE_NAME":               "pets",
		"ENV":                         "production",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Auth.Algorithm != "HS512" || cfg.Auth.TokenTTL() != 5*time.Minute {
		t.Errorf("unexpected auth config: %+v", cfg.Auth)
	}
	if !cfg.Mongo.TLS || cfg.Mongo.URI() != "mongodb+srv://cluster.example.net" {
		t.Errorf("unexpected mongo config: %+v", cfg.Mongo)
	}
	if cfg.IsDevelopment() {
		t.Errorf("expected production env")
	}
}

func TestLoad_TLSRequiresURL(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"MONGODB_TLS": "true",
	}))
	if err == nil || !strings.Contains(err.Error(), "MONGODB_URL") {
		t.Fatalf("expected MONGODB_URL error, got %v", err)
	}
}

func TestLoad_RejectsInvalidAuth(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown algorithm": {"ALGORITHM": "RS256"},
		"zero ttl":          {"ACCESS_TOKEN_EXPIRE_MINUTES": "0"},
		"non-numeric ttl":   {"ACCESS_TOKEN_EXPIRE_MINUTES": "soon"},
	}
	for name, env := range cases {
		if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

// Every algorithm the token codec can sign with must pass config validation.
func TestLoad_AcceptsCodecAlgorithms(t *testing.T) {
	for _, alg := range security.SupportedAlgorithms {
		cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"ALGORITHM": alg}))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", alg, err)
		}
		if _, err := security.NewJWTCodec(cfg.Auth.SecretKey, cfg.Auth.Algorithm); err != nil {
			t.Fatalf("%s: codec rejected a validated config: %v", alg, err)
		}
	}
}
