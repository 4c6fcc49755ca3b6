package fixture

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/repository"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/reviews"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "movies": [
    {"_id": "573a1390f29313caabcd4135", "title": "Blacksmith Scene", "cast": ["Charles Kayser"], "year": 1893,
     "released": {"$date": {"$numberLong": "-2418768000000"}}},
    {"title": "The Matrix", "cast": ["Keanu Reeves"], "lastUpdated": "2015-08-26 00:03:50.133000000"}
  ],
  "graph": [
    {"title": "The Matrix", "released": 1999, "tagline": "Welcome to the Real World"}
  ],
  "reviews": [
    {"person": "Jessica Thompson", "movie": "The Matrix"},
    {"person": "Jessica Thompson", "movie": "Cloud Atlas"}
  ]
}`

func TestLoad(t *testing.T) {
	repo := repository.NewMemoryRepo()
	graph := reviews.NewMemoryStore()

	n, err := Load(strings.NewReader(sample), repo, graph)
	require.NoError(t, err)
	require.Equal(t, Counts{Movies: 2, Nodes: 1, Reviews: 2}, n)

	ctx := context.Background()
	list, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "573a1390f29313caabcd4135", list[0].ID.Hex())
	require.Equal(t, time.Date(1893, 5, 9, 0, 0, 0, 0, time.UTC), list[0].Released.UTC())
	require.False(t, list[1].ID.IsZero())

	props, err := graph.ReviewedMovies(ctx, "Jessica Thompson")
	require.NoError(t, err)
	require.Len(t, props, 2)
	require.Equal(t, int64(1999), props[0]["released"])
	require.Equal(t, "Cloud Atlas", props[1]["title"])

	titles, err := graph.MovieTitles(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"The Matrix", "Cloud Atlas"}, titles)

	found, err := repo.Find(ctx, movie.Filter{Actor: "Keanu Reeves"})
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestLoadRejectsBadInput(t *testing.T) {
	_, err := Load(strings.NewReader(`{"movies": [`), repository.NewMemoryRepo(), reviews.NewMemoryStore())
	require.Error(t, err)

	_, err = Load(strings.NewReader(`{"reviews": [{"person": "x"}]}`), repository.NewMemoryRepo(), reviews.NewMemoryStore())
	require.ErrorContains(t, err, "review 0")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	n, err := LoadFile(path, repository.NewMemoryRepo(), reviews.NewMemoryStore())
	require.NoError(t, err)
	require.Equal(t, 2, n.Movies)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"), repository.NewMemoryRepo(), reviews.NewMemoryStore())
	require.Error(t, err)
}
