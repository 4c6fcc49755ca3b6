package reviews

import (
	"context"
	"sync"
)

// Review is one REVIEWED edge, identified by its endpoints.
type Review struct {
	Person string `json:"person"`
	Movie  string `json:"movie"`
}

// MemoryStore is an in-process graph used by tests and the catalog dev
// server. Movie nodes are kept in insertion order; edges point at the first
// node carrying the reviewed title.
type MemoryStore struct {
	mu      sync.RWMutex
	movies  []map[string]any
	reviews []Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AddMovie adds a Movie node with the given properties.
func (s *MemoryStore) AddMovie(props map[string]any) {
	cp := make(map[string]any, len(props))
	for k, v := range props {
		cp[k] = v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = append(s.movies, cp)
}

// AddReview adds a REVIEWED edge, creating a bare Movie node when no node
// has that title yet.
func (s *MemoryStore) AddReview(person, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.node(title) == nil {
		s.movies = append(s.movies, map[string]any{"title": title})
	}
	s.reviews = append(s.reviews, Review{Person: person, Movie: title})
}

func (s *MemoryStore) node(title string) map[string]any {
	for _, m := range s.movies {
		if t, ok := m["title"].(string); ok && t == title {
			return m
		}
	}
	return nil
}

func (s *MemoryStore) MovieTitles(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for _, m := range s.movies {
		if t, ok := m["title"].(string); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryStore) Reviewers(_ context.Context, title string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for _, r := range s.reviews {
		if r.Movie == title {
			out = append(out, r.Person)
		}
	}
	return out, nil
}

func (s *MemoryStore) ReviewedMovies(_ context.Context, name string) ([]map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []map[string]any{}
	for _, r := range s.reviews {
		if r.Person != name {
			continue
		}
		props := make(map[string]any)
		for k, v := range s.node(r.Movie) {
			props[k] = v
		}
		out = append(out, props)
	}
	return out, nil
}
