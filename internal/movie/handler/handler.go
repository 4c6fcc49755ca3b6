package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/service"
	"github.com/reelgraph/reelgraph/backend/movie-api/pkg/logger"
	"github.com/reelgraph/reelgraph/backend/movie-api/pkg/metrics"
)

const (
	msgMissingFilter  = "Either title or actor must be provided"
	msgNothingUpdated = "No update performed. Perhaps the new data is the same as existing data."
	msgUpdated        = "Movie updated successfully"
)

// RegisterMovieRoutes mounts the movie API on rg, normally the /movie group.
func RegisterMovieRoutes(rg *gin.RouterGroup, svc service.Service) {
	rg.GET("/", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	rg.GET("/specific", func(c *gin.Context) {
		f := movie.Filter{Title: c.Query("title"), Actor: c.Query("actor")}
		list, err := svc.FindSpecific(c.Request.Context(), f)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	rg.GET("/common", func(c *gin.Context) {
		n, err := svc.CommonCount(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, n)
	})

	// both graph lookups share the :name segment so gin can route them
	rg.GET("/:name/rated-users", func(c *gin.Context) {
		names, err := svc.RatedUsers(c.Request.Context(), c.Param("name"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, names)
	})

	rg.GET("/:name/ratings", func(c *gin.Context) {
		r, err := svc.UserRatings(c.Request.Context(), c.Param("name"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	})

	rg.PUT("/:title", func(c *gin.Context) {
		var u movie.Update
		if err := c.ShouldBindJSON(&u); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		if err := svc.Update(c.Request.Context(), c.Param("title"), &u); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": msgUpdated})
	})
}

// fail maps a service error onto the response. Store faults are logged and
// counted before the driver's message is returned.
func fail(c *gin.Context, err error) {
	var se *service.StoreError
	switch {
	case errors.Is(err, service.ErrMissingFilter):
		c.JSON(http.StatusBadRequest, gin.H{"detail": msgMissingFilter})
	case errors.Is(err, service.ErrNothingUpdated):
		c.JSON(http.StatusBadRequest, gin.H{"detail": msgNothingUpdated})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.As(err, &se):
		logger.Errorf("%s %s: %s error: %v", c.Request.Method, c.Request.URL.Path, se.Store, se.Err)
		metrics.StoreFaults.WithLabelValues(se.Store).Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
