package signup

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/wardro8e/api/internal/domain"
)

const sweepInterval = 5 * time.Minute

// MemoryStore is a single-process Store backed by an expiring in-memory
// cache. Entries outlive their OTP expiry by one extra TTL so the expired
// case stays distinguishable; the cache janitor sweeps them afterwards.
// Not suitable for multi-instance deployments — use RedisStore there.
type MemoryStore struct {
	c         *gocache.Cache
	retention time.Duration
}

func NewMemoryStore(otpTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		c:         gocache.New(2*otpTTL, sweepInterval),
		retention: 2 * otpTTL,
	}
}

func (s *MemoryStore) Put(_ context.Context, p *domain.PendingSignup) error {
	s.c.Set(NormalizeEmail(p.Email), p, s.retention)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (*domain.PendingSignup, error) {
	v, ok := s.c.Get(NormalizeEmail(email))
	if !ok {
		return nil, fmt.Errorf("pending signup for %s: %w", email, domain.ErrNotFound)
	}
	return v.(*domain.PendingSignup), nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.c.Delete(NormalizeEmail(email))
	return nil
}
