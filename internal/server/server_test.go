package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/reelgraph/reelgraph/backend/movie-api/handlers"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/config"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/repository"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/service"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/reviews"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) service.Service {
	t.Helper()
	repo := repository.NewMemoryRepo()
	title := "Sleepless in Seattle"
	_, err := repo.Insert(&movie.Movie{Details: movie.Details{Title: &title}})
	require.NoError(t, err)
	graph := reviews.NewMemoryStore()
	graph.AddReview("Paul Blythe", title)
	return service.New(repo, graph)
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRouterServesAPIAndOpsEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(newService(t), Options{
		Checks: map[string]handlers.ReadinessCheck{"mongodb": func(context.Context) error { return nil }},
	})

	w := get(r, "/movie/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Sleepless in Seattle")
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(r, "/movie/common")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "1", w.Body.String())

	require.Equal(t, http.StatusOK, get(r, "/health").Code)
	require.Equal(t, http.StatusOK, get(r, "/ready").Code)
	require.Equal(t, http.StatusOK, get(r, "/swagger/doc.json").Code)

	w = get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `movieapi_http_requests_total{method="GET",route="/movie/common",status="200"}`)
}

func TestRouterWithRedisRateLimit(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	gin.SetMode(gin.TestMode)
	r := NewRouter(newService(t), Options{
		RateLimit: config.RateLimitConfig{Enabled: true, UseRedis: true, RPS: 0, Burst: 1, WindowSeconds: 60},
		Redis:     redis.NewClient(&redis.Options{Addr: m.Addr()}),
	})

	require.Equal(t, http.StatusOK, get(r, "/health").Code)
	require.Equal(t, http.StatusTooManyRequests, get(r, "/health").Code)
}

func TestRouterWithMemoryRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(newService(t), Options{
		RateLimit: config.RateLimitConfig{Enabled: true, RPS: 0.1, Burst: 1},
	})
	require.Equal(t, http.StatusOK, get(r, "/health").Code)
	require.Equal(t, http.StatusTooManyRequests, get(r, "/health").Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1:0", http.NotFoundHandler(), config.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, time.Second) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeReportsListenError(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1:-1", http.NotFoundHandler(), config.ServerConfig{})
	err := Serve(context.Background(), srv, time.Second)
	require.Error(t, err)
	require.False(t, errors.Is(err, http.ErrServerClosed))
}
