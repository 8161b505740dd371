package models

import "github.com/goccy/go-json"

// CatalogResponse is returned by api/rophim/catalog.
type CatalogResponse struct {
	Movies   []Movie `json:"movies"`
	Page     int     `json:"page,omitempty"`
	Category string  `json:"category,omitempty"`
	Sort     string  `json:"sort,omitempty"`
	Total    int     `json:"total,omitempty"`
}

// CuratedHomeResponse is returned by api/rophim/home/curated.
type CuratedHomeResponse struct {
	Sections []HomeSection `json:"sections"`
	Total    int           `json:"total,omitempty"`
}

// HomeSection is one pre-grouped row of the landing screen.
type HomeSection struct {
	Title  string  `json:"title"`
	Key    string  `json:"key"`
	Movies []Movie `json:"movies"`
}

// SearchResponse is returned by api/rophim/search.
type SearchResponse struct {
	Movies []Movie `json:"movies"`
	Total  int     `json:"total,omitempty"`
}

// StreamResponse is returned by api/rophim/stream/{slug}.
type StreamResponse struct {
	StreamURL string `json:"stream_url"`
}

// HealthStatus is the free-form body of api/health.
type HealthStatus map[string]any

// MovieDetailResponse is returned by api/rophim/movie/{slug}. Some deployments
// nest the record under "movie", others return it flat. The people and episode
// fields are not schema-stable and are kept raw for the normalizer.
type MovieDetailResponse struct {
	Movie *MovieDetail `json:"movie,omitempty"`

	ID            string          `json:"id,omitempty"`
	Slug          string          `json:"slug,omitempty"`
	Name          string          `json:"name,omitempty"`
	Title         string          `json:"title,omitempty"`
	OriginName    string          `json:"origin_name,omitempty"`
	OriginalTitle string          `json:"original_title,omitempty"`
	ThumbURL      string          `json:"thumb_url,omitempty"`
	PosterURL     string          `json:"poster_url,omitempty"`
	Year          int             `json:"year,omitempty"`
	Quality       string          `json:"quality,omitempty"`
	Content       string          `json:"content,omitempty"`
	Description   string          `json:"description,omitempty"`
	Director      json.RawMessage `json:"director,omitempty"`
	Actor         json.RawMessage `json:"actor,omitempty"`
	Cast          json.RawMessage `json:"cast,omitempty"`
	Episodes      json.RawMessage `json:"episodes,omitempty"`
}

// MovieDetail is the nested form of a detail payload.
type MovieDetail struct {
	ID          string          `json:"id,omitempty"`
	Slug        string          `json:"slug,omitempty"`
	Name        string          `json:"name,omitempty"`
	Title       string          `json:"title,omitempty"`
	OriginName  string          `json:"origin_name,omitempty"`
	ThumbURL    string          `json:"thumb_url,omitempty"`
	PosterURL   string          `json:"poster_url,omitempty"`
	Year        int             `json:"year,omitempty"`
	Quality     string          `json:"quality,omitempty"`
	Lang        string          `json:"lang,omitempty"`
	Time        string          `json:"time,omitempty"`
	Content     string          `json:"content,omitempty"`
	Description string          `json:"description,omitempty"`
	Director    json.RawMessage `json:"director,omitempty"`
	Actor       json.RawMessage `json:"actor,omitempty"`
	Cast        json.RawMessage `json:"cast,omitempty"`
}

// EpisodeServer groups the episodes hosted by one streaming server.
type EpisodeServer struct {
	ServerName string        `json:"server_name,omitempty"`
	ServerData []EpisodeItem `json:"server_data"`
}

// EpisodeItem is a single playable episode.
type EpisodeItem struct {
	Name      string `json:"name,omitempty"`
	Slug      string `json:"slug,omitempty"`
	Filename  string `json:"filename,omitempty"`
	LinkEmbed string `json:"link_embed,omitempty"`
	LinkM3U8  string `json:"link_m3u8,omitempty"`
}

// DetailView is a movie after its detail payload has been merged in.
type DetailView struct {
	Movie          Movie           `json:"movie"`
	EpisodeServers []EpisodeServer `json:"episodeServers,omitempty"`
	Suggestions    Row             `json:"suggestions"`
	ForYou         Row             `json:"forYou"`
}

// Row is a titled list of movies rendered as one browse row.
type Row struct {
	Title  string  `json:"title"`
	Movies []Movie `json:"movies"`
}
