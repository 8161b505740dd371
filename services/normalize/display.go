package normalize

import (
	"strconv"
	"strings"

	"streamflixtv/models"
)

const (
	UnknownYear    = "Unknown"
	NoRating       = "N/A"
	DefaultQuality = "HD"
	maxActorsShown = 5
	durationSuffix = " phút"
	listSeparator  = ", "
	subtitleJoiner = " • "
)

// DisplayTitle prefers title, then name, then the slug.
func DisplayTitle(m models.Movie) string {
	if t := strings.TrimSpace(m.Title); t != "" {
		return t
	}
	if n := strings.TrimSpace(m.Name); n != "" {
		return n
	}
	return m.Slug
}

// PosterImage returns the best poster URL, falling back to the thumbnail.
func PosterImage(m models.Movie) string {
	if m.PosterURL != "" {
		return m.PosterURL
	}
	return m.Thumbnail
}

// ThumbImage returns the thumbnail, falling back to the poster.
func ThumbImage(m models.Movie) string {
	if m.Thumbnail != "" {
		return m.Thumbnail
	}
	return m.PosterURL
}

func joinNames(names []string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, listSeparator)
}

func GenreNames(m models.Movie) string    { return joinNames(m.Genres) }
func CountryNames(m models.Movie) string  { return joinNames(m.Country) }
func DirectorNames(m models.Movie) string { return joinNames(m.Director) }

// ActorNames joins the first five actors.
func ActorNames(m models.Movie) string {
	actors := m.Actor
	if len(actors) > maxActorsShown {
		actors = actors[:maxActorsShown]
	}
	return joinNames(actors)
}

// YearDisplay formats the release year, "Unknown" when missing.
func YearDisplay(m models.Movie) string {
	if m.Year <= 0 {
		return UnknownYear
	}
	return strconv.Itoa(m.Year)
}

// Rating takes the first rating present among rating, tmdb_rating and
// imdb_rating. A present but non-positive value counts as no rating.
func Rating(m models.Movie) (float64, bool) {
	for _, r := range []*float64{m.Rating, m.TMDBRating, m.IMDBRating} {
		if r != nil {
			return *r, *r > 0
		}
	}
	return 0, false
}

// RatingDisplay formats the rating with one decimal, "N/A" when missing.
func RatingDisplay(m models.Movie) string {
	r, ok := Rating(m)
	if !ok {
		return NoRating
	}
	return oneDecimal(r)
}

// oneDecimal rounds a positive value half-up on its shortest decimal form,
// so 7.25 gives "7.3" even though the nearest float is below 7.25.
func oneDecimal(r float64) string {
	whole, frac, _ := strings.Cut(strconv.FormatFloat(r, 'f', -1, 64), ".")
	if len(frac) <= 1 {
		return strconv.FormatFloat(r, 'f', 1, 64)
	}
	tenths, err := strconv.ParseInt(whole+frac[:1], 10, 64)
	if err != nil {
		return strconv.FormatFloat(r, 'f', 1, 64)
	}
	if frac[1] >= '5' {
		tenths++
	}
	return strconv.FormatInt(tenths/10, 10) + "." + strconv.FormatInt(tenths%10, 10)
}

// QualityBadge returns the quality tag, "HD" when missing.
func QualityBadge(m models.Movie) string {
	if q := strings.TrimSpace(m.Quality); q != "" {
		return q
	}
	return DefaultQuality
}

// DurationDisplay returns duration (or time) with a minutes suffix when the
// backend sent a bare number.
func DurationDisplay(m models.Movie) string {
	d := strings.TrimSpace(m.Duration)
	if d == "" {
		d = strings.TrimSpace(m.Time)
	}
	if d == "" {
		return ""
	}
	if strings.Contains(d, "phút") || strings.Contains(strings.ToLower(d), "min") {
		return d
	}
	return d + durationSuffix
}

// IsSeries reports whether the record is a series, from the type tag,
// the category, or an episode total above one.
func IsSeries(m models.Movie) bool {
	typ := strings.ToLower(m.Type)
	if strings.Contains(typ, "series") || strings.Contains(typ, "hoathinh") {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(m.Category), "series") {
		return true
	}
	return episodeTotal(m.EpisodeTotal) > 1
}

// episodeTotal reads counts like "24", "24 tập" or "12/24".
func episodeTotal(v string) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if idx := strings.IndexByte(v, '/'); idx >= 0 {
		return episodeTotal(v[idx+1:])
	}
	fields := strings.Fields(v)
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			return n
		}
	}
	return 0
}

// Subtitle builds the "year • quality • duration • ⭐ rating • genres" line,
// skipping parts that are unknown.
func Subtitle(m models.Movie) string {
	var parts []string
	if m.Year > 0 {
		parts = append(parts, YearDisplay(m))
	}
	parts = append(parts, QualityBadge(m))
	if d := DurationDisplay(m); d != "" {
		parts = append(parts, d)
	}
	if _, ok := Rating(m); ok {
		parts = append(parts, "⭐ "+RatingDisplay(m))
	}
	if g := GenreNames(m); g != "" {
		parts = append(parts, g)
	}
	return strings.Join(parts, subtitleJoiner)
}

// Description builds the body text: synopsis followed by director, cast and
// country lines.
func Description(m models.Movie) string {
	var b strings.Builder
	if c := strings.TrimSpace(m.Content); c != "" {
		b.WriteString(c)
		b.WriteString("\n\n")
	}
	if d := DirectorNames(m); d != "" {
		b.WriteString("Director: " + d + "\n")
	}
	if a := ActorNames(m); a != "" {
		b.WriteString("Cast: " + a + "\n")
	}
	if c := CountryNames(m); c != "" {
		b.WriteString("Country: " + c)
	}
	return strings.TrimSpace(b.String())
}
