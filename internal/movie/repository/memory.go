package repository

import (
	"bytes"
	"context"
	"sync"

	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps raw BSON documents in insertion order, which stands in for
// the natural order of a real collection. It is used by unit tests and by the
// catalog dev server.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs []bson.Raw
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Insert stores m, assigning a fresh ObjectID when it has none.
func (r *MemoryRepo) Insert(m *movie.Movie) (primitive.ObjectID, error) {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	raw, err := bson.Marshal(m)
	if err != nil {
		return primitive.NilObjectID, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, raw)
	return m.ID, nil
}

func (r *MemoryRepo) List(_ context.Context, limit int64) ([]*movie.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*movie.Movie{}
	for _, raw := range r.docs {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		m, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MemoryRepo) Find(_ context.Context, f movie.Filter) ([]*movie.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*movie.Movie{}
	for _, raw := range r.docs {
		m, err := decode(raw)
		if err != nil {
			return nil, err
		}
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

// UpdateByTitle follows the server's rules: the first document with the
// title is matched, and it only counts as modified when a value changes.
func (r *MemoryRepo) UpdateByTitle(_ context.Context, title string, set bson.D) (UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, raw := range r.docs {
		if t, ok := raw.Lookup("title").StringValueOK(); !ok || t != title {
			continue
		}
		next, changed, err := applySet(raw, set)
		if err != nil {
			return UpdateResult{}, err
		}
		if !changed {
			return UpdateResult{Matched: 1}, nil
		}
		r.docs[i] = next
		return UpdateResult{Matched: 1, Modified: 1}, nil
	}
	return UpdateResult{}, nil
}

func (r *MemoryRepo) Titles(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []string{}
	for _, raw := range r.docs {
		if t, ok := raw.Lookup("title").StringValueOK(); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func decode(raw bson.Raw) (*movie.Movie, error) {
	var m movie.Movie
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// applySet merges set into raw and reports whether any stored value differs
// from the one being written.
func applySet(raw bson.Raw, set bson.D) (bson.Raw, bool, error) {
	elems, err := raw.Elements()
	if err != nil {
		return nil, false, err
	}
	incoming := make(map[string]bson.RawValue, len(set))
	for _, e := range set {
		t, data, err := bson.MarshalValue(e.Value)
		if err != nil {
			return nil, false, err
		}
		incoming[e.Key] = bson.RawValue{Type: t, Value: data}
	}

	changed := false
	next := make(bson.D, 0, len(elems)+len(set))
	seen := make(map[string]bool, len(set))
	for _, el := range elems {
		key := el.Key()
		cur := el.Value()
		if v, ok := incoming[key]; ok {
			seen[key] = true
			if v.Type != cur.Type || !bytes.Equal(v.Value, cur.Value) {
				changed = true
			}
			next = append(next, bson.E{Key: key, Value: v})
			continue
		}
		next = append(next, bson.E{Key: key, Value: cur})
	}
	for _, e := range set {
		if !seen[e.Key] {
			changed = true
			next = append(next, bson.E{Key: e.Key, Value: incoming[e.Key]})
		}
	}
	if !changed {
		return raw, false, nil
	}
	out, err := bson.Marshal(next)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
