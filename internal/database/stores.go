package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/config"
	"github.com/reelgraph/reelgraph/backend/movie-api/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectAttempts = 5

// initialBackoff is the wait after the first failed attempt; it doubles after each failure.
var initialBackoff = time.Second

// Stores holds the two process-wide store handles. Both are safe for
// concurrent use and live from Open until Close.
type Stores struct {
	Mongo  *mongo.Client
	Movies *mongo.Collection
	Graph  neo4j.DriverWithContext
}

// Open connects to MongoDB and Neo4j, retrying each with backoff to tolerate
// startup races with the databases.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	var client *mongo.Client
	err := withBackoff(ctx, "MongoDB", func() error {
		c, err := ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		client = c
		return err
	})
	if err != nil {
		return nil, err
	}

	var driver neo4j.DriverWithContext
	err = withBackoff(ctx, "Neo4j", func() error {
		d, err := ConnectNeo4j(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, cfg.Neo4j.Timeout)
		driver = d
		return err
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Infof("connected to MongoDB (db=%s) and Neo4j", cfg.MongoDB.Database)
	return &Stores{
		Mongo:  client,
		Movies: client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection),
		Graph:  driver,
	}, nil
}

// PingMongo checks the primary is reachable.
func (s *Stores) PingMongo(ctx context.Context) error {
	return s.Mongo.Ping(ctx, readpref.Primary())
}

// PingGraph checks the Neo4j server is reachable.
func (s *Stores) PingGraph(ctx context.Context) error {
	return s.Graph.VerifyConnectivity(ctx)
}

// Close releases both handles and reports every failure.
func (s *Stores) Close(ctx context.Context) error {
	var errs []error
	if s.Mongo != nil {
		if err := s.Mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongo disconnect: %w", err))
		}
	}
	if s.Graph != nil {
		if err := s.Graph.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("neo4j close: %w", err))
		}
	}
	return errors.Join(errs...)
}

func withBackoff(ctx context.Context, what string, connect func() error) error {
	backoff := initialBackoff
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if err = connect(); err == nil {
			return nil
		}
		logger.Warnf("attempt %d/%d: failed to connect to %s: %v", attempt, connectAttempts, what, err)
		if attempt == connectAttempts {
			break
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("connect to %s: %w", what, ctx.Err())
		}
		backoff *= 2
	}
	return fmt.Errorf("could not connect to %s after %d attempts: %w", what, connectAttempts, err)
}
