package movie

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strp(s string) *string { return &s }

func TestFilterMatches(t *testing.T) {
	m := &Movie{Details: Details{Title: strp("Unforgiven"), Cast: []string{"Clint Eastwood", "Gene Hackman"}}}

	require.True(t, Filter{Title: "Unforgiven"}.Matches(m))
	require.True(t, Filter{Actor: "Gene Hackman"}.Matches(m))
	require.True(t, Filter{Title: "Unforgiven", Actor: "Clint Eastwood"}.Matches(m))
	require.False(t, Filter{Title: "unforgiven"}.Matches(m))
	require.False(t, Filter{Title: "Unforgiven", Actor: "Morgan"}.Matches(m))
	require.False(t, Filter{Actor: "Clint"}.Matches(m))
	require.False(t, Filter{Title: "x"}.Matches(&Movie{}))
	require.True(t, Filter{}.Empty())
}

func TestMovieDecodesStoreDocument(t *testing.T) {
	id := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "The Dark Knight"},
		{Key: "runtime", Value: int32(152)},
		{Key: "imdb", Value: bson.D{{Key: "rating", Value: int32(9)}, {Key: "votes", Value: int32(1000)}}},
		{Key: "tomatoes", Value: bson.D{
			{Key: "viewer", Value: bson.D{{Key: "rating", Value: 4.2}, {Key: "numReviews", Value: int32(10)}}},
			{Key: "lastUpdated", Value: bson.D{{Key: "$date", Value: "2015-09-12T17:22:39Z"}}},
		}},
		{Key: "plot", Value: nil},
	})
	require.NoError(t, err)

	var m Movie
	require.NoError(t, bson.Unmarshal(raw, &m))
	require.Equal(t, id, m.ID)
	require.Equal(t, 152, *m.Runtime)
	require.Equal(t, 9.0, *m.IMDB.Rating)
	require.Nil(t, m.IMDB.ID)
	require.Equal(t, 4.2, *m.Tomatoes.Viewer.Rating)
	require.Nil(t, m.Tomatoes.Critic)
	require.Equal(t, 2015, m.Tomatoes.LastUpdated.Year())
	require.Nil(t, m.Plot)

	b, err := json.Marshal(&m)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, id.Hex(), out["_id"])
	require.NotContains(t, out, "plot")
	tomatoes := out["tomatoes"].(map[string]any)
	require.Equal(t, "2015-09-12T17:22:39Z", tomatoes["lastUpdated"])
}
