package normalize

import (
	"strings"

	"github.com/goccy/go-json"

	"streamflixtv/models"
)

// Detail flattens both payload layouts into one nested-style record.
func Detail(resp models.MovieDetailResponse) models.MovieDetail {
	if resp.Movie != nil {
		return *resp.Movie
	}
	actor := resp.Actor
	if !hasValue(actor) {
		actor = resp.Cast
	}
	return models.MovieDetail{
		ID:         resp.ID,
		Slug:       resp.Slug,
		Name:       firstNonEmpty(resp.Name, resp.Title),
		Title:      resp.Title,
		OriginName: firstNonEmpty(resp.OriginName, resp.OriginalTitle),
		ThumbURL:   resp.ThumbURL,
		PosterURL:  resp.PosterURL,
		Year:       resp.Year,
		Quality:    resp.Quality,
		Content:    firstNonEmpty(resp.Content, resp.Description),
		Director:   resp.Director,
		Actor:      actor,
	}
}

// MergeDetail folds a detail payload into movie. Non-empty detail values win;
// people lists fall back to what the movie already had.
func MergeDetail(movie models.Movie, resp models.MovieDetailResponse) models.Movie {
	detail := Detail(resp)

	if v := strings.TrimSpace(detail.Name); v != "" {
		movie.Name = v
	}
	if v := strings.TrimSpace(detail.Title); v != "" {
		movie.Title = v
	}
	if v := strings.TrimSpace(detail.OriginName); v != "" && movie.OriginName == "" {
		movie.OriginName = v
	}
	if v := firstNonEmpty(detail.Content, detail.Description); v != "" {
		movie.Content = v
	}
	if detail.Year > 0 {
		movie.Year = detail.Year
	}
	if v := strings.TrimSpace(detail.Quality); v != "" {
		movie.Quality = v
	}
	if v := strings.TrimSpace(detail.Lang); v != "" {
		movie.Lang = v
	}
	if v := strings.TrimSpace(detail.Time); v != "" && movie.Duration == "" {
		movie.Time = v
	}
	if movie.PosterURL == "" {
		movie.PosterURL = detail.PosterURL
	}
	if movie.Thumbnail == "" {
		movie.Thumbnail = detail.ThumbURL
	}
	if names := Names(detail.Director); len(names) > 0 {
		movie.Director = names
	}
	actorRaw := detail.Actor
	if !hasValue(actorRaw) {
		actorRaw = detail.Cast
	}
	if names := Names(actorRaw); len(names) > 0 {
		movie.Actor = names
	}
	return movie
}

func hasValue(raw json.RawMessage) bool {
	return ParseNames(raw).Shape != ShapeAbsent
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
