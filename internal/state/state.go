package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cnctools/catalog/internal/domain"

	"github.com/redis/go-redis/v9"
)

// StateManager keeps each session's filter state between requests.
type StateManager interface {
	Get(ctx context.Context, sessionID string) (domain.FilterState, bool, error)
	Save(ctx context.Context, sessionID string, st domain.FilterState) error
}

type redisStateManager struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

func NewRedisStateManager(redisClient *redis.Client, ttl time.Duration) StateManager {
	return &redisStateManager{
		redisClient: redisClient,
		keyPrefix:   "catalog:state:",
		ttl:         ttl,
	}
}

func (s *redisStateManager) Get(ctx context.Context, sessionID string) (domain.FilterState, bool, error) {
	key := s.keyPrefix + sessionID
	val, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.FilterState{}, false, nil
		}
		return domain.FilterState{}, false, fmt.Errorf("failed to get state for session %s: %w", sessionID, err)
	}

	var st domain.FilterState
	if err := json.Unmarshal(val, &st); err != nil {
		return domain.FilterState{}, false, fmt.Errorf("failed to decode state for session %s: %w", sessionID, err)
	}

	return st.Normalize(), true, nil
}

func (s *redisStateManager) Save(ctx context.Context, sessionID string, st domain.FilterState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode state for session %s: %w", sessionID, err)
	}

	key := s.keyPrefix + sessionID
	if err := s.redisClient.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save state for session %s: %w", sessionID, err)
	}
	return nil
}
