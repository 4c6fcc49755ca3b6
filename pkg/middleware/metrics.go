package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reelgraph/reelgraph/backend/movie-api/pkg/metrics"
)

// Metrics records request counts and latency, labelled by the matched route
// template so path parameters such as titles do not explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
