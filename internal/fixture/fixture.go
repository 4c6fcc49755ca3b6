// Package fixture seeds the in-memory stores from a JSON document.
//
// The document has the shape
//
//	{
//	  "movies":  [ <movie record>, ... ],
//	  "graph":   [ { <Movie node properties> }, ... ],
//	  "reviews": [ { "person": "...", "movie": "..." }, ... ]
//	}
//
// Movie records accept extended-JSON timestamps ({"$date": ...}). Reviews
// whose movie has no node in "graph" get a bare node with just the title.
package fixture

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/repository"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/reviews"
)

type document struct {
	Movies  []movie.Movie    `json:"movies"`
	Graph   []map[string]any `json:"graph"`
	Reviews []reviews.Review `json:"reviews"`
}

// Counts reports how much a load inserted.
type Counts struct {
	Movies  int
	Nodes   int
	Reviews int
}

// Load reads a fixture from r into repo and graph.
func Load(r io.Reader, repo *repository.MemoryRepo, graph *reviews.MemoryStore) (Counts, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Counts{}, fmt.Errorf("decode fixture: %w", err)
	}

	for i := range doc.Movies {
		if _, err := repo.Insert(&doc.Movies[i]); err != nil {
			return Counts{}, fmt.Errorf("movie %d: %w", i, err)
		}
	}
	for _, props := range doc.Graph {
		graph.AddMovie(normalize(props))
	}
	for i, rv := range doc.Reviews {
		if rv.Person == "" || rv.Movie == "" {
			return Counts{}, fmt.Errorf("review %d: person and movie are required", i)
		}
		graph.AddReview(rv.Person, rv.Movie)
	}
	return Counts{Movies: len(doc.Movies), Nodes: len(doc.Graph), Reviews: len(doc.Reviews)}, nil
}

// LoadFile is Load over the named file.
func LoadFile(path string, repo *repository.MemoryRepo, graph *reviews.MemoryStore) (Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return Counts{}, err
	}
	defer f.Close()
	return Load(f, repo, graph)
}

// normalize turns json.Number into int64 or float64, the types the graph
// driver hands back for node properties.
func normalize(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case []any:
		for i := range t {
			t[i] = normalizeValue(t[i])
		}
		return t
	}
	return v
}
