package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"alcyxob/hoops-trainer/internal/repository"
)

// SlotStore implements repository.SlotStore on Redis string keys.
// With a positive ttl every write refreshes the key's expiry, so a slot lives
// as long as it keeps being used. This is how per-tab session slots expire.
type SlotStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ repository.SlotStore = (*SlotStore)(nil)

// NewSlotStore wraps an existing client. ttl <= 0 means keys never expire.
func NewSlotStore(client *redis.Client, ttl time.Duration) *SlotStore {
	return &SlotStore{client: client, ttl: ttl}
}

// Connect creates a client and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (s *SlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if s.ttl > 0 {
		// Reads keep a live tab alive too
		s.client.Expire(ctx, key, s.ttl)
	}
	return v, true, nil
}

func (s *SlotStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: slot %q: %v", repository.ErrWriteFailed, key, err)
	}
	return nil
}
