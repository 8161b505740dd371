package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"streamflixtv/models"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a JSON error response
func writeJSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeMovie reads a movie record from the request body.
func decodeMovie(r *http.Request) (models.Movie, error) {
	var movie models.Movie
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&movie); err != nil {
		return movie, err
	}
	movie.Slug = strings.TrimSpace(movie.Slug)
	return movie, nil
}

// Options handles OPTIONS requests for CORS preflight
func Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
