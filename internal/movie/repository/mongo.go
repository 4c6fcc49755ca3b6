package repository

import (
	"context"

	"github.com/reelgraph/reelgraph/backend/movie-api/internal/movie"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository over the `movies` collection.
// The collection is owned elsewhere; no indexes are created here.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) List(ctx context.Context, limit int64) ([]*movie.Movie, error) {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur)
}

func (m *MongoRepo) Find(ctx context.Context, f movie.Filter) ([]*movie.Movie, error) {
	cur, err := m.col.Find(ctx, filterDoc(f))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur)
}

func (m *MongoRepo) UpdateByTitle(ctx context.Context, title string, set bson.D) (UpdateResult, error) {
	filter := bson.M{"title": title}
	if len(set) == 0 {
		// $set with an empty document is rejected by the server
		n, err := m.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return UpdateResult{}, err
		}
		return UpdateResult{Matched: n}, nil
	}
	res, err := m.col.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (m *MongoRepo) Titles(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"title": 1, "_id": 0})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []string{}
	for cur.Next(ctx) {
		if title, ok := cur.Current.Lookup("title").StringValueOK(); ok {
			out = append(out, title)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func filterDoc(f movie.Filter) bson.M {
	filter := bson.M{}
	if f.Title != "" {
		filter["title"] = f.Title
	}
	if f.Actor != "" {
		// equality against an array field matches any element
		filter["cast"] = f.Actor
	}
	return filter
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*movie.Movie, error) {
	defer cur.Close(ctx)
	out := []*movie.Movie{}
	for cur.Next(ctx) {
		var mv movie.Movie
		if err := cur.Decode(&mv); err != nil {
			return nil, err
		}
		out = append(out, &mv)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
