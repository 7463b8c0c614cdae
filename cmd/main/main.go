package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"campusnav/internal/api"
	"campusnav/internal/config"
	"campusnav/internal/logger"
	"campusnav/internal/postgres"
	"campusnav/internal/redis"
	"campusnav/internal/service/campus"
	"campusnav/internal/service/floorplan"
	"campusnav/internal/service/mission"
	"campusnav/internal/service/navigation"
	"campusnav/internal/service/storage"
	"campusnav/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type services struct {
	resolver *campus.Resolver
	catalog  *floorplan.Catalog
	tracker  *mission.Tracker

	navSessions   *storage.ShardedMemoryStorage[string, *navigation.Session]
	floorSessions *storage.MemoryStorage[string, *floorplan.Session]
}

type connections struct {
	db    *gorm.DB
	redis io.Closer
}

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conns, progress, repo, err := initializeDatabaseAndCache(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer closeConnections(conns, logg)

	svc, err := initializeServices(ctx, cfg, repo, progress, logg)
	if err != nil {
		closeConnections(conns, logg)
		logg.Fatal("failed to initialize services", zap.Error(err))
	}

	janitorDone := worker.StartSessionJanitor(ctx, config.SessionSweepInterval, config.SessionIdleTimeout, logg,
		map[string]worker.Evictor{
			"navigation": svc.navSessions,
			"floorplan":  svc.floorSessions,
		})

	reportMemoryStats(ctx, logg)

	if err := runAPIServer(ctx, cfg, svc, logg); err != nil {
		logg.Error("api server stopped", zap.Error(err))
	}
	stop()
	<-janitorDone
}

var (
	openPostgres  = postgres.Open
	closePostgres = postgres.Close
	connectRedis  = redis.Connect
)

// initializeDatabaseAndCache picks the Postgres mission repository and the
// Redis progress store when configured, in-memory ones otherwise. On error
// every connection opened so far is closed again.
func initializeDatabaseAndCache(ctx context.Context, cfg config.Config, logg *zap.Logger) (conns connections, progress mission.ProgressStore, repo mission.Repository, err error) {
	defer func() {
		if err != nil {
			closeConnections(conns, logg)
			conns = connections{}
		}
	}()

	defaults, err := mission.DefaultMissions()
	if err != nil {
		return conns, nil, nil, err
	}

	if cfg.DBUrl != "" {
		start := time.Now()
		db, err := openPostgres(cfg.DBUrl)
		if err != nil {
			return conns, nil, nil, err
		}
		conns.db = db
		logg.Info("connected to postgres", zap.Duration("took", time.Since(start)))
	} else {
		logg.Info("DB_URL not set, using embedded mission catalogue")
	}

	progress = mission.NewMemoryProgressStore()
	if cfg.RedisUrl != "" {
		start := time.Now()
		client, err := connectRedis(ctx, cfg.RedisUrl)
		if err != nil {
			return conns, nil, nil, err
		}
		conns.redis = client
		progress = mission.NewRedisProgressStore(client)
		logg.Info("connected to redis", zap.Duration("took", time.Since(start)))
	} else {
		logg.Info("REDIS_URL not set, keeping mission progress in memory")
	}

	repo = mission.NewStaticRepository(defaults)
	if conns.db != nil {
		gormRepo := mission.NewGormRepository(conns.db)
		seeded, err := gormRepo.Seed(ctx, defaults)
		if err != nil {
			return conns, nil, nil, err
		}
		logg.Info("mission table ready", zap.Int("seeded_missions", seeded))
		repo = gormRepo
	}

	return conns, progress, repo, nil
}

func initializeServices(ctx context.Context, cfg config.Config, repo mission.Repository, progress mission.ProgressStore, logg *zap.Logger) (*services, error) {
	start := time.Now()
	registry, err := loadRegistry(cfg.CampusFile)
	if err != nil {
		return nil, err
	}
	logg.Info("campus registry loaded",
		zap.Int("buildings", registry.Len()),
		zap.Duration("took", time.Since(start)))

	start = time.Now()
	catalog, err := loadCatalog(cfg.FloorsFile)
	if err != nil {
		return nil, err
	}
	logg.Info("floor catalogue loaded", zap.Duration("took", time.Since(start)))

	tracker, err := mission.NewTracker(ctx, repo, progress, logg)
	if err != nil {
		return nil, err
	}

	return &services{
		resolver:      campus.NewResolver(registry),
		catalog:       catalog,
		tracker:       tracker,
		navSessions:   storage.NewShardedMemoryStorage[string, *navigation.Session](16, nil),
		floorSessions: storage.NewMemoryStorage[string, *floorplan.Session](),
	}, nil
}

func loadRegistry(path string) (*campus.Registry, error) {
	if path == "" {
		return campus.DefaultRegistry()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open campus file: %w", err)
	}
	defer f.Close()
	return campus.LoadRegistry(f)
}

func loadCatalog(path string) (*floorplan.Catalog, error) {
	if path == "" {
		return floorplan.DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open floors file: %w", err)
	}
	defer f.Close()
	return floorplan.LoadCatalog(f)
}

func runAPIServer(ctx context.Context, cfg config.Config, svc *services, logg *zap.Logger) error {
	r := gin.New()

	info := map[string]string{
		"service":   "campusnav",
		"port":      cfg.Port,
		"buildings": fmt.Sprint(svc.resolver.Registry().Len()),
	}
	api.SetupRouter(r, api.Dependencies{
		Info:               info,
		Resolver:           svc.resolver,
		Catalog:            svc.catalog,
		Tracker:            svc.tracker,
		NavigationSessions: svc.navSessions,
		FloorplanSessions:  svc.floorSessions,
		Logger:             logg,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("api server listening", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info("shutdown signal received, stopping api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func reportMemoryStats(ctx context.Context, logg *zap.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)
				logg.Debug("memory stats",
					zap.Uint64("alloc_mib", m.Alloc/1024/1024),
					zap.Uint64("total_alloc_mib", m.TotalAlloc/1024/1024),
					zap.Uint64("sys_mib", m.Sys/1024/1024),
					zap.Uint32("num_gc", m.NumGC))
			}
		}
	}()
}

func closeConnections(conns connections, logg *zap.Logger) {
	if conns.db != nil {
		if err := closePostgres(conns.db); err != nil {
			logg.Error("error closing postgres connection", zap.Error(err))
		}
	}
	if conns.redis != nil {
		if err := conns.redis.Close(); err != nil {
			logg.Error("error closing redis connection", zap.Error(err))
		}
	}
	logg.Info("connections closed")
}
