package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie/repository"
	"github.com/reelgraph/reelgraph/backend/movie-api/internal/reviews"
)

// ListLimit caps the unfiltered listing.
const ListLimit = 100

const (
	StoreMongo = "mongodb"
	StoreNeo4j = "neo4j"
)

var (
	ErrMissingFilter  = errors.New("missing filter")
	ErrNothingUpdated = errors.New("nothing updated")
	ErrNotFound       = errors.New("not found")
)

// NotFoundError reports an update aimed at a title no record carries.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Movie with title '%s' not found", e.Title)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StoreError is a failure reported by one of the backing stores. Its message
// is the driver's own.
type StoreError struct {
	Store string
	Err   error
}

func (e *StoreError) Error() string { return e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(store string, err error) error {
	return &StoreError{Store: store, Err: err}
}

// UserRatings is the result of looking up everything a person reviewed.
type UserRatings struct {
	User        string           `json:"user"`
	MoviesRated int              `json:"movies_rated"`
	RatedMovies []map[string]any `json:"rated_movies"`
}

// Service defines the movie operations used by the handler layer.
type Service interface {
	List(ctx context.Context) ([]*movie.Movie, error)
	FindSpecific(ctx context.Context, f movie.Filter) ([]*movie.Movie, error)
	Update(ctx context.Context, title string, u *movie.Update) error
	CommonCount(ctx context.Context) (int, error)
	RatedUsers(ctx context.Context, title string) ([]string, error)
	UserRatings(ctx context.Context, name string) (*UserRatings, error)
}

// New returns a Service over the given document and graph stores.
func New(repo repository.Repository, graph reviews.Store) *MovieService {
	return &MovieService{repo: repo, graph: graph}
}

type MovieService struct {
	repo  repository.Repository
	graph reviews.Store
}

func (s *MovieService) List(ctx context.Context) ([]*movie.Movie, error) {
	list, err := s.repo.List(ctx, ListLimit)
	if err != nil {
		return nil, storeErr(StoreMongo, err)
	}
	return list, nil
}

func (s *MovieService) FindSpecific(ctx context.Context, f movie.Filter) ([]*movie.Movie, error) {
	if f.Empty() {
		return nil, ErrMissingFilter
	}
	list, err := s.repo.Find(ctx, f)
	if err != nil {
		return nil, storeErr(StoreMongo, err)
	}
	return list, nil
}

// Update applies the supplied fields of u to one record titled title.
// Existence is checked before modification, so an unknown title is always
// reported as not found, even for an empty payload.
func (s *MovieService) Update(ctx context.Context, title string, u *movie.Update) error {
	if u == nil {
		u = movie.NewUpdate(movie.Details{})
	}
	res, err := s.repo.UpdateByTitle(ctx, title, u.Set())
	if err != nil {
		return storeErr(StoreMongo, err)
	}
	if res.Matched == 0 {
		return &NotFoundError{Title: title}
	}
	if res.Modified == 0 {
		return ErrNothingUpdated
	}
	return nil
}

// CommonCount counts the distinct titles present in both stores.
func (s *MovieService) CommonCount(ctx context.Context) (int, error) {
	graphTitles, err := s.graph.MovieTitles(ctx)
	if err != nil {
		return 0, storeErr(StoreNeo4j, err)
	}
	docTitles, err := s.repo.Titles(ctx)
	if err != nil {
		return 0, storeErr(StoreMongo, err)
	}
	inGraph := make(map[string]struct{}, len(graphTitles))
	for _, t := range graphTitles {
		inGraph[t] = struct{}{}
	}
	common := make(map[string]struct{})
	for _, t := range docTitles {
		if _, ok := inGraph[t]; ok {
			common[t] = struct{}{}
		}
	}
	return len(common), nil
}

func (s *MovieService) RatedUsers(ctx context.Context, title string) ([]string, error) {
	names, err := s.graph.Reviewers(ctx, title)
	if err != nil {
		return nil, storeErr(StoreNeo4j, err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *MovieService) UserRatings(ctx context.Context, name string) (*UserRatings, error) {
	movies, err := s.graph.ReviewedMovies(ctx, name)
	if err != nil {
		return nil, storeErr(StoreNeo4j, err)
	}
	if movies == nil {
		movies = []map[string]any{}
	}
	return &UserRatings{User: name, MoviesRated: len(movies), RatedMovies: movies}, nil
}
