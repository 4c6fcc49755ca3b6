package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reelgraph/reelgraph/backend/movie-api/pkg/logger"
)

// ReadinessCheck reports whether one dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// readyTimeout bounds each dependency check.
const readyTimeout = 2 * time.Second

var startTime = time.Now()

// RegisterHealth adds /health (liveness) and /ready. /ready answers 200 only
// when every check passes; otherwise 503 with the per-dependency map.
func RegisterHealth(r gin.IRoutes, checks map[string]ReadinessCheck) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := make(map[string]bool, len(names))
		for _, name := range names {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
			err := checks[name](ctx)
			cancel()
			deps[name] = err == nil
			if err != nil {
				logger.Warnf("readiness: %s: %v", name, err)
				ready = false
			}
		}

		uptime := time.Since(startTime).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
