package mission

import (
	"context"
	"fmt"
	"sync"

	"campusnav/internal/service/storage"

	"github.com/redis/go-redis/v9"
)

// ProgressRedisKey prefixes per-player completion sets
const ProgressRedisKey = "mission:progress"

// ProgressStore persists which missions a player completed
type ProgressStore interface {
	Completed(ctx context.Context, playerID string) (map[string]bool, error)
	MarkCompleted(ctx context.Context, playerID, missionID string) error
}

// MemoryProgressStore keeps progress in process memory
type MemoryProgressStore struct {
	mu      sync.Mutex
	storage storage.Storage[string, map[string]bool]
}

// NewMemoryProgressStore creates an in-memory progress store
func NewMemoryProgressStore() *MemoryProgressStore {
	return &MemoryProgressStore{
		storage: storage.NewMemoryStorage[string, map[string]bool](),
	}
}

// Completed returns a copy of the player's completed missions
func (s *MemoryProgressStore) Completed(_ context.Context, playerID string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	done, _ := s.storage.Get(playerID)
	result := make(map[string]bool, len(done))
	for id := range done {
		result[id] = true
	}
	return result, nil
}

// MarkCompleted records a completed mission
func (s *MemoryProgressStore) MarkCompleted(_ context.Context, playerID, missionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	done, ok := s.storage.Get(playerID)
	if !ok {
		done = make(map[string]bool)
	}
	done[missionID] = true
	s.storage.Set(playerID, done)
	return nil
}

// RedisProgressStore keeps one Redis set per player
type RedisProgressStore struct {
	client redis.UniversalClient
}

// NewRedisProgressStore creates a Redis backed progress store
func NewRedisProgressStore(client redis.UniversalClient) *RedisProgressStore {
	return &RedisProgressStore{client: client}
}

func progressKey(playerID string) string {
	return fmt.Sprintf("%s:%s", ProgressRedisKey, playerID)
}

// Completed returns the player's completed missions
func (s *RedisProgressStore) Completed(ctx context.Context, playerID string) (map[string]bool, error) {
	ids, err := s.client.SMembers(ctx, progressKey(playerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}

	result := make(map[string]bool, len(ids))
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// MarkCompleted records a completed mission
func (s *RedisProgressStore) MarkCompleted(ctx context.Context, playerID, missionID string) error {
	if err := s.client.SAdd(ctx, progressKey(playerID), missionID).Err(); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
