package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/99minutos/pet-management/internal/core/domain"
)

func TestIdentityService_Resolve(t *testing.T) {
	repo := newStubUserRepo()
	codec := newFakeCodec()
	created, _ := repo.Create(context.Background(), &domain.User{Email: "alice@example.com", HashedPassword: "h"})
	token, _ := codec.Issue("alice@example.com", time.Minute)

	svc := NewIdentityService(codec, repo, discardLogger)
	user, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %s, got %s", created.ID, user.ID)
	}
}

func TestIdentityService_Failures(t *testing.T) {
	repo := newStubUserRepo()
	codec := newFakeCodec()
	_, _ = repo.Create(context.Background(), &domain.User{Email: "alice@example.com", HashedPassword: "h"})

	expired, _ := codec.Issue("alice@example.com", time.Minute)
	codec.now = codec.now.Add(2 * time.Minute)
	orphan, _ := codec.Issue("deleted@example.com", time.Hour)

	svc := NewIdentityService(codec, repo, discardLogger)
	cases := map[string]string{
		"empty":        "",
		"malformed":    "garbage",
		"expired":      expired,
		"unknown user": orphan,
	}
	for name, token := range cases {
		if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}

func TestIdentityService_StoreErrorIsUnauthorized(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("db unavailable")
	codec := newFakeCodec()
	token, _ := codec.Issue("alice@example.com", time.Minute)

	svc := NewIdentityService(codec, repo, discardLogger)
	if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
