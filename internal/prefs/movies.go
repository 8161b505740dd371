package prefs

import (
	"fmt"
	"log"

	"github.com/goccy/go-json"

	"streamflixtv/models"
)

// ReadMovies decodes the movie array stored under key. A missing key or a
// blob that does not decode is an empty list; only backend failures are
// returned as errors.
func ReadMovies(store Store, key string) ([]models.Movie, error) {
	raw, ok, err := store.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []models.Movie{}, nil
	}

	var movies []models.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		log.Printf("[prefs] discarding malformed %s: %v", key, err)
		return []models.Movie{}, nil
	}

	out := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if m.Slug != "" {
			out = append(out, m)
		}
	}
	return out, nil
}

// WriteMovies stores movies as a JSON array under key.
func WriteMovies(store Store, key string, movies []models.Movie) error {
	if movies == nil {
		movies = []models.Movie{}
	}
	data, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Put(key, string(data))
}
