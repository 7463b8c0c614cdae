package main

import (
	"context"
	"errors"
	"testing"

	"campusnav/internal/config"
	"campusnav/internal/service/mission"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func stubConnections(t *testing.T) {
	t.Helper()
	origOpen, origClose, origRedis := openPostgres, closePostgres, connectRedis
	t.Cleanup(func() {
		openPostgres, closePostgres, connectRedis = origOpen, origClose, origRedis
	})
}

func TestInitializeDatabaseAndCache_InMemory(t *testing.T) {
	conns, progress, repo, err := initializeDatabaseAndCache(context.Background(), config.Config{}, zap.NewNop())
	require.NoError(t, err)

	assert.Nil(t, conns.db)
	assert.Nil(t, conns.redis)
	assert.IsType(t, &mission.MemoryProgressStore{}, progress)
	assert.IsType(t, &mission.StaticRepository{}, repo)
}

func TestInitializeDatabaseAndCache_ClosesPostgresWhenRedisFails(t *testing.T) {
	stubConnections(t)

	db := &gorm.DB{}
	closed := 0
	openPostgres = func(string) (*gorm.DB, error) { return db, nil }
	closePostgres = func(got *gorm.DB) error {
		assert.Same(t, db, got)
		closed++
		return nil
	}
	connectRedis = func(context.Context, string) (*goredis.Client, error) {
		return nil, errors.New("connection refused")
	}

	cfg := config.Config{DBUrl: "postgres://campus", RedisUrl: "redis://localhost:6379/0"}
	conns, progress, repo, err := initializeDatabaseAndCache(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)

	assert.Equal(t, 1, closed)
	assert.Nil(t, conns.db)
	assert.Nil(t, progress)
	assert.Nil(t, repo)
}

func TestInitializeDatabaseAndCache_PostgresFailure(t *testing.T) {
	stubConnections(t)

	closed := 0
	openPostgres = func(string) (*gorm.DB, error) { return nil, errors.New("no route to host") }
	closePostgres = func(*gorm.DB) error {
		closed++
		return nil
	}

	_, _, _, err := initializeDatabaseAndCache(context.Background(), config.Config{DBUrl: "postgres://campus"}, zap.NewNop())
	require.Error(t, err)
	assert.Zero(t, closed)
}
