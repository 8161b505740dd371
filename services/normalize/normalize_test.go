package normalize

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamflixtv/models"
)

func TestParseNames(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		shape Shape
		want  []string
	}{
		{name: "missing", raw: ``, shape: ShapeAbsent},
		{name: "null", raw: `null`, shape: ShapeAbsent},
		{name: "strings", raw: `["A","B"]`, shape: ShapeStrings, want: []string{"A", "B"}},
		{name: "objects", raw: `[{"name":"A"}]`, shape: ShapeObjects, want: []string{"A"}},
		{name: "object fallbacks", raw: `[{"original_name":"A"},{"title":"B"},{"id":3}]`, shape: ShapeObjects, want: []string{"A", "B"}},
		{name: "mixed", raw: `["A",{"name":"B"}]`, shape: ShapeMixed, want: []string{"A", "B"}},
		{name: "blank entries dropped", raw: `[" A ","",null]`, shape: ShapeStrings, want: []string{"A"}},
		{name: "single comma string", raw: `"A, B"`, shape: ShapeSingle, want: []string{"A", "B"}},
		{name: "empty string", raw: `""`, shape: ShapeAbsent},
		{name: "single object", raw: `{"name":"A"}`, shape: ShapeObjects, want: []string{"A"}},
		{name: "number", raw: `42`, shape: ShapeUnknown},
		{name: "list of numbers", raw: `[1,2]`, shape: ShapeUnknown},
		{name: "empty list", raw: `[]`, shape: ShapeStrings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNames(json.RawMessage(tt.raw))
			assert.Equal(t, tt.shape, got.Shape)
			assert.Equal(t, tt.want, got.Names)
		})
	}
}

func TestEpisodesServerList(t *testing.T) {
	raw := `[{"server_name":"Vietsub #1","server_data":[{"name":"Tập 1","slug":"tap-1","link_m3u8":"https://cdn/1.m3u8"},{"name":"Tập 2","link_embed":"https://embed/2"}]},{"server_name":"Thuyết minh"}]`

	servers := Episodes(json.RawMessage(raw))
	require.Len(t, servers, 2)
	assert.Equal(t, "Vietsub #1", servers[0].ServerName)
	require.Len(t, servers[0].ServerData, 2)
	assert.Equal(t, "https://cdn/1.m3u8", EpisodeURL(servers[0].ServerData[0]))
	assert.Equal(t, "https://embed/2", EpisodeURL(servers[0].ServerData[1]))
	assert.Empty(t, servers[1].ServerData)
	assert.Equal(t, 2, EpisodeCount(servers))
}

func TestEpisodesFlatListIsWrapped(t *testing.T) {
	servers := Episodes(json.RawMessage(`[{"name":"Full","link_m3u8":"https://cdn/full.m3u8"}]`))
	require.Len(t, servers, 1)
	assert.Equal(t, "", servers[0].ServerName)
	assert.Equal(t, "Season 1", ServerLabel(0, servers[0]))
	require.Len(t, servers[0].ServerData, 1)
	assert.Equal(t, "Full", servers[0].ServerData[0].Name)

	servers = Episodes(json.RawMessage(`["Tập 1","Tập 2"]`))
	require.Len(t, servers, 1)
	assert.Equal(t, "Tập 2", EpisodeLabel(1, servers[0].ServerData[1]))
}

func TestEpisodesOtherShapes(t *testing.T) {
	assert.Nil(t, Episodes(nil))
	assert.Nil(t, Episodes(json.RawMessage(`null`)))
	assert.Nil(t, Episodes(json.RawMessage(`{"server_name":"x"}`)))
	assert.Nil(t, Episodes(json.RawMessage(`[1,2,3]`)))
	assert.Equal(t, 0, EpisodeCount(nil))
	assert.Equal(t, "Episode 3", EpisodeLabel(2, models.EpisodeItem{}))
}

func TestRatingDisplay(t *testing.T) {
	assert.Equal(t, "N/A", RatingDisplay(models.Movie{}))
	assert.Equal(t, "7.5", RatingDisplay(models.Movie{Rating: models.Float(7.5)}))
	assert.Equal(t, "8.0", RatingDisplay(models.Movie{TMDBRating: models.Float(8)}))
	assert.Equal(t, "6.3", RatingDisplay(models.Movie{IMDBRating: models.Float(6.26)}))
}

func TestRatingTakesFirstPresentValue(t *testing.T) {
	m := models.Movie{Rating: models.Float(0), TMDBRating: models.Float(8)}
	assert.Equal(t, "N/A", RatingDisplay(m))
	_, ok := Rating(m)
	assert.False(t, ok)

	assert.Equal(t, "N/A", RatingDisplay(models.Movie{TMDBRating: models.Float(-1), IMDBRating: models.Float(7)}))
	assert.Equal(t, "7.0", RatingDisplay(models.Movie{TMDBRating: models.Float(7), IMDBRating: models.Float(9)}))
	assert.Equal(t, "HD", Subtitle(m))
}

func TestRatingRoundsHalfUp(t *testing.T) {
	tests := map[float64]string{
		7.25: "7.3",
		8.45: "8.5",
		0.05: "0.1",
		9.95: "10.0",
		7.24: "7.2",
		6.15: "6.2",
		7.5:  "7.5",
		10:   "10.0",
	}
	for in, want := range tests {
		assert.Equal(t, want, RatingDisplay(models.Movie{Rating: models.Float(in)}), "rating %v", in)
	}
}

func TestYearQualityDuration(t *testing.T) {
	assert.Equal(t, "Unknown", YearDisplay(models.Movie{}))
	assert.Equal(t, "2019", YearDisplay(models.Movie{Year: 2019}))

	assert.Equal(t, "HD", QualityBadge(models.Movie{}))
	assert.Equal(t, "FHD", QualityBadge(models.Movie{Quality: "FHD"}))

	assert.Equal(t, "", DurationDisplay(models.Movie{}))
	assert.Equal(t, "120 phút", DurationDisplay(models.Movie{Duration: "120"}))
	assert.Equal(t, "45 phút/tập", DurationDisplay(models.Movie{Time: "45 phút/tập"}))
	assert.Equal(t, "98 min", DurationDisplay(models.Movie{Duration: "98 min"}))
}

func TestIsSeries(t *testing.T) {
	assert.True(t, IsSeries(models.Movie{Type: "series"}))
	assert.True(t, IsSeries(models.Movie{Type: "hoathinh"}))
	assert.True(t, IsSeries(models.Movie{Category: "Series"}))
	assert.True(t, IsSeries(models.Movie{EpisodeTotal: "24"}))
	assert.True(t, IsSeries(models.Movie{EpisodeTotal: "16 Tập"}))
	assert.False(t, IsSeries(models.Movie{EpisodeTotal: "1"}))
	assert.False(t, IsSeries(models.Movie{Type: "single", EpisodeTotal: "Full"}))
}

func TestJoinedNames(t *testing.T) {
	m := models.Movie{
		Genres:   []string{"Hành Động", "Hài"},
		Country:  []string{"Việt Nam"},
		Director: []string{"Trấn Thành", " "},
		Actor:    []string{"A", "B", "C", "D", "E", "F"},
	}
	assert.Equal(t, "Hành Động, Hài", GenreNames(m))
	assert.Equal(t, "Việt Nam", CountryNames(m))
	assert.Equal(t, "Trấn Thành", DirectorNames(m))
	assert.Equal(t, "A, B, C, D, E", ActorNames(m))
	assert.Equal(t, "", GenreNames(models.Movie{}))
}

func TestTitlesAndImages(t *testing.T) {
	assert.Equal(t, "T", DisplayTitle(models.Movie{Slug: "s", Title: "T", Name: "N"}))
	assert.Equal(t, "N", DisplayTitle(models.Movie{Slug: "s", Name: "N"}))
	assert.Equal(t, "s", DisplayTitle(models.Movie{Slug: "s"}))

	assert.Equal(t, "p", PosterImage(models.Movie{PosterURL: "p", Thumbnail: "t"}))
	assert.Equal(t, "t", PosterImage(models.Movie{Thumbnail: "t"}))
	assert.Equal(t, "t", ThumbImage(models.Movie{PosterURL: "p", Thumbnail: "t"}))
	assert.Equal(t, "p", ThumbImage(models.Movie{PosterURL: "p"}))
}

func TestSubtitleAndDescription(t *testing.T) {
	m := models.Movie{
		Year:     2019,
		Duration: "128",
		Rating:   models.Float(7.5),
		Genres:   []string{"Drama"},
		Content:  "  A family story. ",
		Director: []string{"Trấn Thành"},
		Actor:    []string{"Tuấn Trần"},
	}
	assert.Equal(t, "2019 • HD • 128 phút • ⭐ 7.5 • Drama", Subtitle(m))
	assert.Equal(t, "A family story.\n\nDirector: Trấn Thành\nCast: Tuấn Trần", Description(m))

	assert.Equal(t, "HD", Subtitle(models.Movie{}))
	assert.Equal(t, "", Description(models.Movie{}))
}

func TestMergeDetailFlat(t *testing.T) {
	movie := models.Movie{Slug: "bo-gia", Name: "Bo Gia", Year: 2021, Actor: []string{"old"}}
	var resp models.MovieDetailResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"slug":"bo-gia","name":"Bố Già","description":"Story","year":0,"quality":"FHD",
		"director":[{"name":"Trấn Thành"}],"actor":null,"cast":["Tuấn Trần","Ngân Chi"]
	}`), &resp))

	merged := MergeDetail(movie, resp)
	assert.Equal(t, "Bố Già", merged.Name)
	assert.Equal(t, "Story", merged.Content)
	assert.Equal(t, 2021, merged.Year, "zero year keeps the existing one")
	assert.Equal(t, "FHD", merged.Quality)
	assert.Equal(t, []string{"Trấn Thành"}, merged.Director)
	assert.Equal(t, []string{"Tuấn Trần", "Ngân Chi"}, merged.Actor)
}

func TestMergeDetailNested(t *testing.T) {
	movie := models.Movie{Slug: "x", Director: []string{"keep"}}
	var resp models.MovieDetailResponse
	require.NoError(t, json.Unmarshal([]byte(`{"movie":{"name":"X","content":"C","year":2020,"lang":"Vietsub","actor":"A, B"}}`), &resp))

	merged := MergeDetail(movie, resp)
	assert.Equal(t, "X", merged.Name)
	assert.Equal(t, "C", merged.Content)
	assert.Equal(t, 2020, merged.Year)
	assert.Equal(t, "Vietsub", merged.Lang)
	assert.Equal(t, []string{"keep"}, merged.Director)
	assert.Equal(t, []string{"A", "B"}, merged.Actor)
}

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "bo gia", SearchKey("  Bố   Già "))
	assert.Equal(t, "mat biec", SearchKey("MẮT BIẾC"))
	assert.Equal(t, "dao phong", SearchKey("Đạo Phong"))
	assert.Equal(t, "", SearchKey(" "))

	keys := SearchKeys(models.Movie{Slug: "bo-gia", Name: "Bố Già"})
	assert.Equal(t, []string{"bo gia"}, keys)
}

func TestSearchRanksBestFirst(t *testing.T) {
	movies := []models.Movie{
		{Slug: "the-matrix-reloaded", Title: "The Matrix Reloaded"},
		{Slug: "matrix", Title: "Matrix"},
		{Slug: "up", Title: "Up"},
	}
	hits := Search(movies, "matrix")
	require.Len(t, hits, 2)
	assert.Equal(t, "matrix", hits[0].Slug)
	assert.Equal(t, "the-matrix-reloaded", hits[1].Slug)
}
