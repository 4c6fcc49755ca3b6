// Package reviews reads the (:Person)-[:REVIEWED]->(:Movie) graph.
package reviews

import "context"

// Store is the graph-store side of the movie API. Results keep the store's
// natural order and are never deduplicated.
type Store interface {
	// MovieTitles returns the title of every Movie node that has one.
	MovieTitles(ctx context.Context) ([]string, error)
	// Reviewers returns one person name per REVIEWED edge into the movie
	// with exactly this title.
	Reviewers(ctx context.Context, title string) ([]string, error)
	// ReviewedMovies returns the raw property map of the Movie node at the
	// end of every REVIEWED edge leaving the person with exactly this name.
	ReviewedMovies(ctx context.Context, name string) ([]map[string]any, error)
}
