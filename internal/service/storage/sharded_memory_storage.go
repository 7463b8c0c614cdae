package storage

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

// ShardedMemoryStorage - sharded object storage
type ShardedMemoryStorage[K comparable, V any] struct {
	shards     []*shardData[K, V]
	shardCount int
	keyToShard func(K) int // Shard distribution function
	now        func() time.Time
}

// shardData - single shard data
type shardData[K comparable, V any] struct {
	data       map[K]V
	mutex      sync.RWMutex
	lastUpdate map[K]time.Time
}

// NewShardedMemoryStorage creates a new sharded storage
func NewShardedMemoryStorage[K comparable, V any](shardCount int, keyToShardFunc func(K) int) *ShardedMemoryStorage[K, V] {
	// Round up to power of two
	realShardCount := 1
	for realShardCount < shardCount {
		realShardCount *= 2
	}

	shards := make([]*shardData[K, V], realShardCount)
	for i := 0; i < realShardCount; i++ {
		shards[i] = &shardData[K, V]{
			data:       make(map[K]V),
			lastUpdate: make(map[K]time.Time),
		}
	}

	// If no distribution function provided, use standard one for string and numeric keys
	if keyToShardFunc == nil {
		mask := realShardCount - 1
		keyToShardFunc = func(key K) int {
			switch k := any(key).(type) {
			case string:
				return int(hashString(k)) & mask
			case int:
				return k & mask
			case int64:
				return int(k) & mask
			default:
				return int(hashString(fmt.Sprintf("%v", key))) & mask
			}
		}
	}

	return &ShardedMemoryStorage[K, V]{
		shards:     shards,
		shardCount: realShardCount,
		keyToShard: keyToShardFunc,
		now:        time.Now,
	}
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// getShard returns shard for key
func (s *ShardedMemoryStorage[K, V]) getShard(key K) *shardData[K, V] {
	return s.shards[s.keyToShard(key)]
}

// Set adds or updates an object
func (s *ShardedMemoryStorage[K, V]) Set(key K, value V) {
	shard := s.getShard(key)

	shard.mutex.Lock()
	defer shard.mutex.Unlock()

	shard.data[key] = value
	shard.lastUpdate[key] = s.now()
}

// Get returns object by key
func (s *ShardedMemoryStorage[K, V]) Get(key K) (V, bool) {
	shard := s.getShard(key)

	shard.mutex.RLock()
	defer shard.mutex.RUnlock()

	value, exists := shard.data[key]
	return value, exists
}

// Delete removes an object
func (s *ShardedMemoryStorage[K, V]) Delete(key K) bool {
	shard := s.getShard(key)

	shard.mutex.Lock()
	defer shard.mutex.Unlock()

	if _, exists := shard.data[key]; !exists {
		return false
	}

	delete(shard.data, key)
	delete(shard.lastUpdate, key)
	return true
}

// Touch marks an object as used without replacing it
func (s *ShardedMemoryStorage[K, V]) Touch(key K) bool {
	shard := s.getShard(key)

	shard.mutex.Lock()
	defer shard.mutex.Unlock()

	if _, exists := shard.data[key]; !exists {
		return false
	}
	shard.lastUpdate[key] = s.now()
	return true
}

// EvictOlder removes objects not set or touched within age, shard by shard
func (s *ShardedMemoryStorage[K, V]) EvictOlder(age time.Duration) int {
	cutoff := s.now().Add(-age)
	removed := 0

	for _, shard := range s.shards {
		shard.mutex.Lock()
		for k, t := range shard.lastUpdate {
			if t.Before(cutoff) {
				delete(shard.data, k)
				delete(shard.lastUpdate, k)
				removed++
			}
		}
		shard.mutex.Unlock()
	}

	return removed
}

// Count returns total number of objects
func (s *ShardedMemoryStorage[K, V]) Count() int {
	count := 0
	for _, shard := range s.shards {
		shard.mutex.RLock()
		count += len(shard.data)
		shard.mutex.RUnlock()
	}
	return count
}
