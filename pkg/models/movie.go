package models

// Movie is a record owned by the external catalog. We fetch it, combine it
// per request and throw it away; nothing here is persisted locally.
//
// Runtime is only populated by a detail lookup. ReleaseDate is nil when the
// catalog has no date (the catalog sometimes sends an empty string instead,
// which the client normalizes to nil).
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	GenreIDs    []int64 `json:"genre_ids,omitempty"`
	Genres      []Genre `json:"genres,omitempty"` // detail responses carry full genre objects
	Overview    string  `json:"overview,omitempty"`
	ReleaseDate *string `json:"release_date"`
	Runtime     *int    `json:"runtime,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty"`
	Popularity  float64 `json:"popularity,omitempty"`
	PosterPath  *string `json:"poster_path,omitempty"`
}

// Genre is one entry of the catalog's genre list.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
