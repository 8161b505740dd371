package normalize

import (
	"sort"

	"streamflixtv/models"
	"streamflixtv/utils/similarity"
)

// Search returns the movies whose titles match query, best match first.
// Ties keep their original order. An empty query matches nothing.
func Search(movies []models.Movie, query string) []models.Movie {
	q := SearchKey(query)
	if q == "" {
		return []models.Movie{}
	}

	type hit struct {
		movie models.Movie
		score float64
	}
	hits := make([]hit, 0)
	for _, m := range movies {
		if score := similarity.Best(q, SearchKeys(m)); score >= similarity.MatchThreshold {
			hits = append(hits, hit{movie: m, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]models.Movie, len(hits))
	for i, h := range hits {
		out[i] = h.movie
	}
	return out
}
