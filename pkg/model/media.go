package model

// MediaType is the kind of a catalog entry.
type MediaType string

const (
	MediaTypeMovie  = MediaType("MOVIE")
	MediaTypeSeries = MediaType("SERIES")
	MediaTypeGame   = MediaType("GAME")
)

// ValidMediaType reports whether t is one of the known media types.
// t is expected to be upper-cased already.
func ValidMediaType(t string) bool {
	switch MediaType(t) {
	case MediaTypeMovie, MediaTypeSeries, MediaTypeGame:
		return true
	}
	return false
}

// MediaEntry is a catalog entry for a movie, series or game.
type MediaEntry struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	MediaType      string   `json:"mediaType"`
	ReleaseYear    int      `json:"releaseYear,omitempty"`
	Genres         []string `json:"genres"`
	AgeRestriction int      `json:"ageRestriction,omitempty"`
	CreatorID      int64    `json:"creatorId"`
}

// MediaPatch carries a partial update for a media entry. Nil fields
// (and zero numeric values) leave the stored value untouched.
type MediaPatch struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	MediaType      *string  `json:"mediaType"`
	ReleaseYear    *int     `json:"releaseYear"`
	Genres         []string `json:"genres"`
	AgeRestriction *int     `json:"ageRestriction"`
}

// MediaFilter holds the optional search predicates, combined with AND.
// Blank strings and nil pointers mean "no filter".
type MediaFilter struct {
	Title          string
	Genre          string
	MediaType      string
	ReleaseYear    *int
	AgeRestriction *int
	MinRating      *float64
	SortBy         string
}
