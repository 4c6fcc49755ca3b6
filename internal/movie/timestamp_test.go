package movie

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2008, 7, 14, 0, 0, 0, 0, time.UTC)
	cases := map[string]any{
		"time":           want,
		"datetime":       primitive.NewDateTimeFromTime(want),
		"rfc3339":        "2008-07-14T00:00:00Z",
		"fraction":       "2008-07-14T00:00:00.000Z",
		"offset":         "2008-07-14T02:00:00+02:00",
		"naive":          "2008-07-14T00:00:00",
		"date only":      "2008-07-14",
		"millis":         want.UnixMilli(),
		"json number":    float64(want.UnixMilli()),
		"wrapped string": map[string]any{"$date": "2008-07-14T00:00:00Z"},
		"wrapped long":   map[string]any{"$date": map[string]any{"$numberLong": "1215993600000"}},
		"wrapped bson.D": primitive.D{{Key: "$date", Value: "2008-07-14T00:00:00Z"}},
		"wrapped bson.M": primitive.M{"$date": primitive.NewDateTimeFromTime(want)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseTimestamp(in)
			require.NoError(t, err)
			require.True(t, want.Equal(got), "got %v", got)
			require.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, in := range []any{"yesterday", map[string]any{"when": "now"}, true} {
		_, err := ParseTimestamp(in)
		require.Error(t, err, "input %v", in)
	}
}

func TestTimestampBSONNativeAndWrappedAgree(t *testing.T) {
	when := time.Date(1992, 8, 7, 0, 0, 0, 0, time.UTC)
	native, err := bson.Marshal(bson.D{{Key: "released", Value: when}})
	require.NoError(t, err)
	wrapped, err := bson.Marshal(bson.D{{Key: "released", Value: bson.D{{Key: "$date", Value: "1992-08-07T00:00:00"}}}})
	require.NoError(t, err)

	var a, b Movie
	require.NoError(t, bson.Unmarshal(native, &a))
	require.NoError(t, bson.Unmarshal(wrapped, &b))
	require.NotNil(t, a.Released)
	require.NotNil(t, b.Released)
	require.True(t, a.Released.Equal(b.Released.Time))
	require.True(t, when.Equal(a.Released.Time))
}

func TestTimestampBSONNullAndAbsent(t *testing.T) {
	raw, err := bson.Marshal(bson.D{{Key: "title", Value: "Heat"}, {Key: "released", Value: nil}})
	require.NoError(t, err)
	var m Movie
	require.NoError(t, bson.Unmarshal(raw, &m))
	require.Nil(t, m.Released)
	require.Nil(t, m.LastUpdated)
	require.Equal(t, "Heat", *m.Title)
}

func TestTimestampJSON(t *testing.T) {
	ts := NewTimestamp(time.Date(2015, 9, 11, 0, 48, 1, 0, time.UTC))
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	require.JSONEq(t, `"2015-09-11T00:48:01Z"`, string(b))

	var fromWrapped Timestamp
	require.NoError(t, json.Unmarshal([]byte(`{"$date":"2015-09-11T00:48:01Z"}`), &fromWrapped))
	require.True(t, ts.Equal(fromWrapped.Time))

	var fromPlain Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2015-09-11T00:48:01Z"`), &fromPlain))
	require.True(t, ts.Equal(fromPlain.Time))
}
