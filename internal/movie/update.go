package movie

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
)

// Update is a partial update payload. Only the keys present in the decoded
// body are applied; a key given as null clears the stored value.
type Update struct {
	Details
	present map[string]struct{}
}

// NewUpdate builds an Update from d that applies only the listed keys.
func NewUpdate(d Details, keys ...string) *Update {
	u := &Update{Details: d, present: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		u.present[k] = struct{}{}
	}
	return u
}

// UnmarshalJSON decodes only keys that exactly match a field's JSON name;
// differently cased variants are ignored like any other unknown key.
func (u *Update) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	known := make(map[string]json.RawMessage, len(raw))
	for _, f := range (&Details{}).fields() {
		if v, ok := raw[f.Key]; ok {
			known[f.Key] = v
		}
	}
	filtered, err := json.Marshal(known)
	if err != nil {
		return err
	}
	var d Details
	if err := json.Unmarshal(filtered, &d); err != nil {
		return err
	}
	u.Details = d
	u.present = make(map[string]struct{}, len(known))
	for k := range known {
		u.present[k] = struct{}{}
	}
	return nil
}

// Has reports whether key was supplied.
func (u *Update) Has(key string) bool {
	_, ok := u.present[key]
	return ok
}

// Set returns the $set document for the supplied fields, in schema order.
func (u *Update) Set() bson.D {
	set := bson.D{}
	for _, f := range u.Details.fields() {
		if u.Has(f.Key) {
			set = append(set, f)
		}
	}
	return set
}

// fields lists every top-level field under its stored key.
func (d *Details) fields() bson.D {
	return bson.D{
		{Key: "plot", Value: d.Plot},
		{Key: "genres", Value: d.Genres},
		{Key: "runtime", Value: d.Runtime},
		{Key: "cast", Value: d.Cast},
		{Key: "poster", Value: d.Poster},
		{Key: "title", Value: d.Title},
		{Key: "fullplot", Value: d.FullPlot},
		{Key: "languages", Value: d.Languages},
		{Key: "released", Value: d.Released},
		{Key: "directors", Value: d.Directors},
		{Key: "rated", Value: d.Rated},
		{Key: "awards", Value: d.Awards},
		{Key: "lastUpdated", Value: d.LastUpdated},
		{Key: "year", Value: d.Year},
		{Key: "imdb", Value: d.IMDB},
		{Key: "countries", Value: d.Countries},
		{Key: "type", Value: d.Type},
		{Key: "tomatoes", Value: d.Tomatoes},
		{Key: "num_mflix_comments", Value: d.NumComments},
	}
}
