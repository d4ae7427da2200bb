package state

import (
	"context"
	"customerwizard/wizard/internal/domain"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

func NewRedisStore(redisClient *redis.Client, keyPrefix string, ttl time.Duration) Store {
	return &redisStore{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
		ttl:         ttl,
	}
}

func (s *redisStore) Get(ctx context.Context, key string) (*domain.WizardState, error) {
	val, err := s.redisClient.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // No state saved yet
		}
		return nil, fmt.Errorf("failed to get state for session %s: %w", key, err)
	}

	return decodeState(key, val)
}

func (s *redisStore) Set(ctx context.Context, key string, state *domain.WizardState) error {
	data, err := encodeState(key, state)
	if err != nil {
		return err
	}

	if err := s.redisClient.Set(ctx, s.keyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set state for session %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, key string) error {
	if err := s.redisClient.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to clear state for session %s: %w", key, err)
	}
	return nil
}
