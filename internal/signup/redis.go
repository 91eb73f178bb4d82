package signup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	rdb "github.com/redis/go-redis/v9"
	"github.com/wardro8e/api/internal/domain"
)

const redisKeyPrefix = "pending-signup:"

// RedisStore is a Store backed by Redis with native per-key expiry, safe to
// share across server instances.
type RedisStore struct {
	c         *rdb.Client
	retention time.Duration
}

func NewRedisStore(addr string, db int, otpTTL time.Duration) *RedisStore {
	return &RedisStore{
		c:         rdb.NewClient(&rdb.Options{Addr: addr, DB: db}),
		retention: 2 * otpTTL,
	}
}

func (s *RedisStore) Put(ctx context.Context, p *domain.PendingSignup) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending signup: %w", err)
	}
	return s.c.Set(ctx, redisKeyPrefix+NormalizeEmail(p.Email), b, s.retention).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (*domain.PendingSignup, error) {
	b, err := s.c.Get(ctx, redisKeyPrefix+NormalizeEmail(email)).Bytes()
	if errors.Is(err, rdb.Nil) {
		return nil, fmt.Errorf("pending signup for %s: %w", email, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get pending signup: %w", err)
	}
	var p domain.PendingSignup
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("unmarshal pending signup: %w", err)
	}
	return &p, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.c.Del(ctx, redisKeyPrefix+NormalizeEmail(email)).Err()
}
