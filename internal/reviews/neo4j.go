package reviews

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

const (
	movieTitlesQuery = `MATCH (m:Movie) RETURN m.title`

	reviewersQuery = `
MATCH (p:Person)-[:REVIEWED]->(m:Movie {title: $movie_name})
RETURN p.name AS personName`

	reviewedMoviesQuery = `
MATCH (p:Person {name: $user_name})-[t:REVIEWED]->(m:Movie)
RETURN m`
)

// Neo4jStore implements Store with fixed, parameterized Cypher queries.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jStore wraps driver. An empty database selects the server default.
func NewNeo4jStore(driver neo4j.DriverWithContext, database string) *Neo4jStore {
	return &Neo4jStore{driver: driver, database: database}
}

func (s *Neo4jStore) run(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	opts := []neo4j.ExecuteQueryConfigurationOption{neo4j.ExecuteQueryWithReadersRouting()}
	if s.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(s.database))
	}
	res, err := neo4j.ExecuteQuery(ctx, s.driver, query, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

func (s *Neo4jStore) MovieTitles(ctx context.Context) ([]string, error) {
	records, err := s.run(ctx, movieTitlesQuery, nil)
	if err != nil {
		return nil, err
	}
	return stringColumn(records, "m.title"), nil
}

func (s *Neo4jStore) Reviewers(ctx context.Context, title string) ([]string, error) {
	records, err := s.run(ctx, reviewersQuery, map[string]any{"movie_name": title})
	if err != nil {
		return nil, err
	}
	return stringColumn(records, "personName"), nil
}

func (s *Neo4jStore) ReviewedMovies(ctx context.Context, name string) ([]map[string]any, error) {
	records, err := s.run(ctx, reviewedMoviesQuery, map[string]any{"user_name": name})
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		v, _ := rec.Get("m")
		props, err := nodeProps(v)
		if err != nil {
			return nil, err
		}
		out = append(out, props)
	}
	return out, nil
}

// stringColumn collects key from every record, skipping nulls.
func stringColumn(records []*neo4j.Record, key string) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		v, _ := rec.Get(key)
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// nodeProps returns the node's properties with driver temporal and spatial
// values converted to JSON-friendly forms.
func nodeProps(v any) (map[string]any, error) {
	var props map[string]any
	switch n := v.(type) {
	case neo4j.Node:
		props = n.Props
	case map[string]any:
		props = n
	default:
		return nil, fmt.Errorf("unexpected value of type %T for movie node", v)
	}
	out := make(map[string]any, len(props))
	for k, p := range props {
		out[k] = plainValue(p)
	}
	return out, nil
}

// plainValue maps temporal types to ISO-8601 strings and points to
// {srid, x, y[, z]} objects. Other values pass through.
func plainValue(v any) any {
	switch t := v.(type) {
	case dbtype.Date:
		return time.Time(t).Format("2006-01-02")
	case dbtype.LocalDateTime:
		return time.Time(t).Format("2006-01-02T15:04:05.999999999")
	case dbtype.LocalTime:
		return time.Time(t).Format("15:04:05.999999999")
	case dbtype.Time:
		return time.Time(t).Format("15:04:05.999999999Z07:00")
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case dbtype.Duration:
		return t.String()
	case dbtype.Point2D:
		return map[string]any{"srid": t.SpatialRefId, "x": t.X, "y": t.Y}
	case dbtype.Point3D:
		return map[string]any{"srid": t.SpatialRefId, "x": t.X, "y": t.Y, "z": t.Z}
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = plainValue(t[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plainValue(e)
		}
		return out
	}
	return v
}
