package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/pet-management/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// Create mirrors the unique email index: the check and insert are atomic.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byEmail[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubPetRepo struct {
	pets      []*domain.Pet
	createErr error
	lastLimit int
}

func (r *stubPetRepo) Create(_ context.Context, pet *domain.Pet) (*domain.Pet, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *pet
	clone.ID = fmt.Sprintf("pet-%d", len(r.pets)+1)
	r.pets = append(r.pets, &clone)
	out := clone
	return &out, nil
}

func (r *stubPetRepo) ListByOwner(_ context.Context, ownerID string, limit int) ([]*domain.Pet, error) {
	r.lastLimit = limit
	var out []*domain.Pet
	for _, p := range r.pets {
		if p.OwnerID != ownerID {
			continue
		}
		clone := *p
		out = append(out, &clone)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Fake security adapters
// ---------------------------------------------------------------------------

// fakeHasher is reversible so tests stay fast; it is salted with a counter so
// two verifies of the same password differ.
type fakeHasher struct {
	mu     sync.Mutex
	n      int
	verifies int
	err    error
}

func (h *fakeHasher) Hash(plaintext string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return "", h.err
	}
	h.n++
	return fmt.Sprintf("hashed:%d:%s", h.n, plaintext), nil
}

func (h *fakeHasher) Verify(plaintext, hashed string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	parts := strings.SplitN(hashed, ":", 3)
	return len(parts) == 3 && parts[0] == "hashed" && parts[2] == plaintext
}

type issuedToken struct {
	subject string
	expires time.Time
}

// fakeCodec keeps issued tokens in memory and checks expiry against now.
type fakeCodec struct {
	mu     sync.Mutex
	now    time.Time
	tokens map[string]issuedToken
	lastTT time.Duration
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{now: time.Now(), tokens: make(map[string]issuedToken)}
}

func (c *fakeCodec) Issue(subject string, ttl time.Duration) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastTT = ttl
	token := fmt.Sprintf("token-%d-%s", len(c.tokens)+1, subject)
	c.tokens[token] = issuedToken{subject: subject, expires: c.now.Add(ttl)}
	return token, nil
}

func (c *fakeCodec) Verify(token string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.tokens[token]
	if !ok || !c.now.Before(it.expires) {
		return "", domain.ErrInvalidToken
	}
	return it.subject, nil
}
