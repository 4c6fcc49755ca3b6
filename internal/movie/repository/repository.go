package repository

import (
	"context"

	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie"
	"go.mongodb.org/mongo-driver/bson"
)

// Repository is the document-store side of the movie API.
type Repository interface {
	// List returns up to limit records in the store's natural order.
	List(ctx context.Context, limit int64) ([]*movie.Movie, error)
	// Find returns every record matching f. No limit is applied.
	Find(ctx context.Context, f movie.Filter) ([]*movie.Movie, error)
	// UpdateByTitle applies set to one record whose title equals title.
	// An empty set only reports whether such a record exists.
	UpdateByTitle(ctx context.Context, title string, set bson.D) (UpdateResult, error)
	// Titles returns the title of every record that has a string title.
	Titles(ctx context.Context) ([]string, error)
}

// UpdateResult mirrors the store's matched/modified counters.
type UpdateResult struct {
	Matched  int64
	Modified int64
}
