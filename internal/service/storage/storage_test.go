package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func implementations(clock *fakeClock) map[string]Storage[string, int] {
	mem := NewMemoryStorage[string, int]()
	mem.now = clock.Now
	sharded := NewShardedMemoryStorage[string, int](3, nil)
	sharded.now = clock.Now

	return map[string]Storage[string, int]{
		"memory":  mem,
		"sharded": sharded,
	}
}

func TestStorage_Basic(t *testing.T) {
	for name, s := range implementations(&fakeClock{now: time.Unix(0, 0)}) {
		t.Run(name, func(t *testing.T) {
			s.Set("a", 1)
			s.Set("b", 2)
			s.Set("a", 3)

			v, ok := s.Get("a")
			assert.True(t, ok)
			assert.Equal(t, 3, v)
			assert.Equal(t, 2, s.Count())

			assert.True(t, s.Delete("a"))
			assert.False(t, s.Delete("a"))
			_, ok = s.Get("a")
			assert.False(t, ok)

			assert.False(t, s.Touch("missing"))
			assert.True(t, s.Touch("b"))
		})
	}
}

func TestStorage_EvictOlder(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	for name, s := range implementations(clock) {
		t.Run(name, func(t *testing.T) {
			s.Set("old", 1)
			s.Set("touched", 2)
			clock.Advance(10 * time.Minute)

			s.Set("fresh", 3)
			assert.True(t, s.Touch("touched"))

			assert.Equal(t, 1, s.EvictOlder(5*time.Minute))
			_, ok := s.Get("old")
			assert.False(t, ok)
			assert.Equal(t, 2, s.Count())
		})
	}
}

func TestShardedMemoryStorage_ShardCount(t *testing.T) {
	s := NewShardedMemoryStorage[int, string](5, nil)
	assert.Equal(t, 8, s.shardCount)

	for i := 0; i < 100; i++ {
		s.Set(i, "x")
	}
	assert.Equal(t, 100, s.Count())
}

func TestShardedMemoryStorage_Concurrent(t *testing.T) {
	s := NewShardedMemoryStorage[string, int](8, nil)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("%d-%d", g, i)
				s.Set(key, i)
				s.Get(key)
				s.Touch(key)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 800, s.Count())
}
