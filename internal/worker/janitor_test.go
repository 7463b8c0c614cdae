package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countingEvictor struct {
	calls   atomic.Int32
	evicted int
	active  int
	lastAge atomic.Int64
}

func (c *countingEvictor) Count() int {
	return c.active
}

func (c *countingEvictor) EvictOlder(age time.Duration) int {
	c.calls.Add(1)
	c.lastAge.Store(int64(age))
	return c.evicted
}

func TestSweep(t *testing.T) {
	a := &countingEvictor{evicted: 2}
	b := &countingEvictor{evicted: 3, active: 7}

	core, logs := observer.New(zap.DebugLevel)
	n := Sweep(time.Minute, zap.New(core), map[string]Evictor{"a": a, "b": b})
	assert.Equal(t, 5, n)
	assert.Equal(t, int32(1), a.calls.Load())
	assert.Equal(t, int64(time.Minute), b.lastAge.Load())

	entries := logs.FilterMessage("session sweep").All()
	assert.Len(t, entries, 2)
	for _, e := range entries {
		fields := e.ContextMap()
		if fields["store"] == "b" {
			assert.EqualValues(t, 3, fields["evicted"])
			assert.EqualValues(t, 7, fields["active"])
		}
	}
}

func TestStartSessionJanitor(t *testing.T) {
	ev := &countingEvictor{}
	ctx, cancel := context.WithCancel(context.Background())

	done := StartSessionJanitor(ctx, 5*time.Millisecond, time.Hour, zap.NewNop(), map[string]Evictor{"s": ev})

	assert.Eventually(t, func() bool { return ev.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
