package models

// Movie is the catalog record shared by list rows, My List and watch history.
// Field names follow the backend payload so persisted blobs stay readable by
// every client of the same backend.
type Movie struct {
	ID             string   `json:"id,omitempty"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title,omitempty"` // frontend naming
	Name           string   `json:"name,omitempty"`  // backend naming
	OriginalTitle  string   `json:"original_title,omitempty"`
	OriginName     string   `json:"origin_name,omitempty"`
	Thumbnail      string   `json:"thumbnail,omitempty"`
	PosterURL      string   `json:"poster_url,omitempty"`
	Year           int      `json:"year,omitempty"`
	Quality        string   `json:"quality,omitempty"`
	Lang           string   `json:"lang,omitempty"`
	Duration       string   `json:"duration,omitempty"`
	Time           string   `json:"time,omitempty"`
	EpisodeCurrent string   `json:"episode_current,omitempty"`
	EpisodeTotal   string   `json:"episode_total,omitempty"`
	Type           string   `json:"type,omitempty"`
	Status         string   `json:"status,omitempty"`
	Content        string   `json:"content,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	TMDBRating     *float64 `json:"tmdb_rating,omitempty"`
	IMDBRating     *float64 `json:"imdb_rating,omitempty"`
	VoteCount      int      `json:"vote_count,omitempty"`
	Genres         []string `json:"genres,omitempty"`
	Country        []string `json:"country,omitempty"`
	Director       []string `json:"director,omitempty"`
	Actor          []string `json:"actor,omitempty"`
	Modified       string   `json:"modified,omitempty"`
	Category       string   `json:"category,omitempty"` // single | series
}

// Key returns the identity used for list membership and history dedup.
func (m Movie) Key() string {
	return m.Slug
}

// Float returns a pointer to v, for populating the nullable rating fields.
func Float(v float64) *float64 {
	return &v
}
