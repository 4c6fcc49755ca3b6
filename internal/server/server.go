// Package server assembles the HTTP surface shared by the movie-api binaries.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/reelgraph/reelgraph/backend/movie-api/handlers"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/config"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/handler"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/service"
	"github.com/reelgraph/reelgraph/backend/movie-api/pkg/logger"
	"github.com/reelgraph/reelgraph/backend/movie-api/pkg/metrics"
	"github.com/reelgraph/reelgraph/backend/movie-api/pkg/middleware"
)

// Options tunes NewRouter. The zero value serves the API without rate
// limiting or readiness checks.
type Options struct {
	RateLimit config.RateLimitConfig
	// Redis backs the shared rate limiter when RateLimit.UseRedis is set.
	Redis  *redis.Client
	Checks map[string]handlers.ReadinessCheck
}

// NewRouter wires middleware, ops endpoints and the /movie group.
func NewRouter(svc service.Service, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	r.Use(middleware.Metrics())

	if opts.RateLimit.Enabled {
		if opts.RateLimit.UseRedis && opts.Redis != nil {
			win := time.Duration(opts.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(opts.Redis, opts.RateLimit.RPS, opts.RateLimit.Burst, win))
			logger.Infof("rate limiter enabled (redis, %.1f rps, burst %d)", opts.RateLimit.RPS, opts.RateLimit.Burst)
		} else {
			r.Use(middleware.RateLimitMiddleware(opts.RateLimit.RPS, opts.RateLimit.Burst))
			logger.Infof("rate limiter enabled (memory, %.1f rps, burst %d)", opts.RateLimit.RPS, opts.RateLimit.Burst)
		}
	}

	handlers.RegisterHealth(r, opts.Checks)
	handlers.RegisterSwagger(r)

	if err := metrics.RegisterCollectors(prometheus.DefaultRegisterer); err != nil {
		logger.Warnf("metrics registration failed: %v", err)
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterMovieRoutes(r.Group("/movie"), svc)
	return r
}

// Serve runs srv until ctx is cancelled, then stops accepting connections and
// waits up to shutdownTimeout for in-flight requests. It returns nil after a
// clean shutdown.
func Serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", srv.Addr)
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

	logger.Infof("shutting down (timeout %s)", shutdownTimeout)
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	return <-errCh
}

// NewHTTPServer applies the configured timeouts to h.
func NewHTTPServer(addr string, h http.Handler, cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}
