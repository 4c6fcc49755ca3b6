package movie

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie is a record of the `movies` collection. Every field except the
// identifier is optional; absent and null values both decode to nil.
type Movie struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Details `bson:",inline"`
}

// Details holds the mutable part of a movie record. It is shared by Movie
// and by Update so the two shapes cannot drift apart.
type Details struct {
	Plot        *string    `json:"plot,omitempty" bson:"plot,omitempty"`
	Genres      []string   `json:"genres,omitempty" bson:"genres,omitempty"`
	Runtime     *int       `json:"runtime,omitempty" bson:"runtime,omitempty"`
	Cast        []string   `json:"cast,omitempty" bson:"cast,omitempty"`
	Poster      *string    `json:"poster,omitempty" bson:"poster,omitempty"`
	Title       *string    `json:"title,omitempty" bson:"title,omitempty"`
	FullPlot    *string    `json:"fullplot,omitempty" bson:"fullplot,omitempty"`
	Languages   []string   `json:"languages,omitempty" bson:"languages,omitempty"`
	Released    *Timestamp `json:"released,omitempty" bson:"released,omitempty"`
	Directors   []string   `json:"directors,omitempty" bson:"directors,omitempty"`
	Rated       *string    `json:"rated,omitempty" bson:"rated,omitempty"`
	Awards      *Awards    `json:"awards,omitempty" bson:"awards,omitempty"`
	LastUpdated *Timestamp `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
	Year        *int       `json:"year,omitempty" bson:"year,omitempty"`
	IMDB        *IMDB      `json:"imdb,omitempty" bson:"imdb,omitempty"`
	Countries   []string   `json:"countries,omitempty" bson:"countries,omitempty"`
	Type        *string    `json:"type,omitempty" bson:"type,omitempty"`
	Tomatoes    *Tomatoes  `json:"tomatoes,omitempty" bson:"tomatoes,omitempty"`
	NumComments *int       `json:"num_mflix_comments,omitempty" bson:"num_mflix_comments,omitempty"`
}

type Awards struct {
	Wins        *int    `json:"wins,omitempty" bson:"wins,omitempty"`
	Nominations *int    `json:"nominations,omitempty" bson:"nominations,omitempty"`
	Text        *string `json:"text,omitempty" bson:"text,omitempty"`
}

type IMDB struct {
	Rating *float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	Votes  *int     `json:"votes,omitempty" bson:"votes,omitempty"`
	ID     *int     `json:"id,omitempty" bson:"id,omitempty"`
}

// Score is the rating block used for both the viewer and the critic side
// of the tomatoes sub-record.
type Score struct {
	Rating     *float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	NumReviews *int     `json:"numReviews,omitempty" bson:"numReviews,omitempty"`
	Meter      *int     `json:"meter,omitempty" bson:"meter,omitempty"`
}

type Tomatoes struct {
	Viewer      *Score     `json:"viewer,omitempty" bson:"viewer,omitempty"`
	Fresh       *int       `json:"fresh,omitempty" bson:"fresh,omitempty"`
	Critic      *Score     `json:"critic,omitempty" bson:"critic,omitempty"`
	Rotten      *int       `json:"rotten,omitempty" bson:"rotten,omitempty"`
	LastUpdated *Timestamp `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
}

// Filter selects movies by exact title and/or cast membership. Empty
// fields do not constrain the result.
type Filter struct {
	Title string
	Actor string
}

// Empty reports whether neither criterion is set.
func (f Filter) Empty() bool {
	return f.Title == "" && f.Actor == ""
}

// Matches applies the filter to an already decoded record.
func (f Filter) Matches(m *Movie) bool {
	if f.Title != "" && (m.Title == nil || *m.Title != f.Title) {
		return false
	}
	if f.Actor != "" {
		for _, a := range m.Cast {
			if a == f.Actor {
				return true
			}
		}
		return false
	}
	return true
}
