package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/reelgraph/reelgraph/backend/movie-api/handlers"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/config"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/database"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/repository"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/service"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/reviews"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/server"
	"github.com/reelgraph/reelgraph/backend/movie-api/pkg/logger"
)

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := database.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open stores: %v", err)
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := stores.Close(cctx); err != nil {
			logger.Errorf("closing stores: %v", err)
		}
		logger.Infof("stores closed")
	}()

	checks := map[string]handlers.ReadinessCheck{
		"mongodb": stores.PingMongo,
		"neo4j":   stores.PingGraph,
	}

	// Redis is optional and only used by the shared rate limiter.
	var rdb *redis.Client
	if addr := cfg.RedisAddr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		} else {
			logger.Infof("connected to Redis at %s", addr)
		}
		defer func() { _ = rdb.Close() }()
		if cfg.RateLimit.UseRedis {
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	svc := service.New(
		repository.NewMongoRepo(stores.Movies),
		reviews.NewNeo4jStore(stores.Graph, cfg.Neo4j.Database),
	)
	r := server.NewRouter(svc, server.Options{RateLimit: cfg.RateLimit, Redis: rdb, Checks: checks})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting movie API on %s (env=%s)", addr, cfg.Server.Environment)
	if err := server.Serve(ctx, server.NewHTTPServer(addr, r, cfg.Server), cfg.Server.ShutdownTimeout); err != nil {
		logger.Errorf("server failed: %v", err)
	}
}
