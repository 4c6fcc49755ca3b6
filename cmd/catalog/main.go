package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelgraph/reelgraph/backend/movie-api/handlers"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/config"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/database"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/fixture"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/repository"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/service"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/reviews"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/server"
	"github.com/reelgraph/reelgraph/backend/movie-api/pkg/logger"
)

// catalog is a development server for the movie API. It talks to MongoDB and
// Neo4j when the usual environment is configured and reachable; otherwise it
// serves in-memory stores, optionally seeded from SEED_FILE.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	port := os.Getenv("CATALOG_PORT")
	if port == "" {
		port = "5010"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var svc service.Service
	checks := map[string]handlers.ReadinessCheck{}

	cfg, err := config.LoadConfig()
	if err == nil {
		stores, oerr := database.Open(ctx, cfg)
		if oerr != nil {
			logger.Warnf("cannot open stores (%v), using in-memory stores", oerr)
		} else {
			defer func() { _ = stores.Close(context.Background()) }()
			svc = service.New(
				repository.NewMongoRepo(stores.Movies),
				reviews.NewNeo4jStore(stores.Graph, cfg.Neo4j.Database),
			)
			checks["mongodb"] = stores.PingMongo
			checks["neo4j"] = stores.PingGraph
		}
	} else {
		logger.Infof("%v; using in-memory stores", err)
	}

	if svc == nil {
		repo := repository.NewMemoryRepo()
		graph := reviews.NewMemoryStore()
		if path := os.Getenv("SEED_FILE"); path != "" {
			n, err := fixture.LoadFile(path, repo, graph)
			if err != nil {
				logger.Fatalf("failed to load seed file %s: %v", path, err)
			}
			logger.Infof("seeded %d movies, %d graph nodes and %d reviews from %s", n.Movies, n.Nodes, n.Reviews, path)
		}
		svc = service.New(repo, graph)
	}

	r := server.NewRouter(svc, server.Options{Checks: checks})
	srv := server.NewHTTPServer(":"+port, r, config.ServerConfig{ReadTimeout: 30 * time.Second, WriteTimeout: 30 * time.Second})
	logger.Infof("catalog dev server listening on :%s", port)
	if err := server.Serve(ctx, srv, 5*time.Second); err != nil {
		logger.Errorf("server failed: %v", err)
	}
}
