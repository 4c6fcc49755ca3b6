package movie

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timestamp is the canonical in-memory form of every date field of a movie.
// The store may hand it over as a native datetime or as an ISO-8601 string
// wrapped in a {"$date": ...} document; both decode to the same value.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns a Timestamp for t normalized to UTC.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t.UTC()}
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp converts any accepted representation of a date into a UTC
// time.Time: time.Time, primitive.DateTime, ISO-8601 strings, epoch
// milliseconds, and {"$date": ...} wrappers (including {"$numberLong": ...}).
func ParseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case primitive.DateTime:
		return t.Time().UTC(), nil
	case string:
		return parseISO(t)
	case int64:
		return time.UnixMilli(t).UTC(), nil
	case int32:
		return time.UnixMilli(int64(t)).UTC(), nil
	case int:
		return time.UnixMilli(int64(t)).UTC(), nil
	case float64:
		return time.UnixMilli(int64(t)).UTC(), nil
	case json.Number:
		ms, err := t.Int64()
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid epoch milliseconds %q: %w", t.String(), err)
		}
		return time.UnixMilli(ms).UTC(), nil
	case map[string]any:
		return parseWrapped(t)
	case primitive.M:
		return parseWrapped(t)
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = e.Value
		}
		return parseWrapped(m)
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp value of type %T", v)
}

func parseWrapped(m map[string]any) (time.Time, error) {
	if d, ok := m["$date"]; ok {
		return ParseTimestamp(d)
	}
	if n, ok := m["$numberLong"]; ok {
		s, _ := n.(string)
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid $numberLong %v: %w", n, err)
		}
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("timestamp document has no $date key")
}

func parseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}

func (ts *Timestamp) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		ts.Time = time.Time{}
		return nil
	}
	var v any
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&v); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(v)
	if err != nil {
		return err
	}
	ts.Time = parsed
	return nil
}

func (ts Timestamp) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(ts.Time.UTC())
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		ts.Time = time.Time{}
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(v)
	if err != nil {
		return err
	}
	ts.Time = parsed
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Time.UTC().Format(time.RFC3339Nano))
}
