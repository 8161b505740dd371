package browse_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"streamflixtv/internal/prefs"
	"streamflixtv/models"
	"streamflixtv/services/browse"
	"streamflixtv/services/browse/mocks"
	"streamflixtv/services/gateway"
	"streamflixtv/services/history"
	"streamflixtv/services/mylist"
)

type fixture struct {
	gw      *mocks.MockGateway
	svc     *browse.Service
	history *history.Service
	myList  *mylist.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	fs := afero.NewMemMapFs()

	listStore, err := prefs.NewFileStore(fs, "prefs", mylist.Namespace)
	require.NoError(t, err)
	histStore, err := prefs.NewFileStore(fs, "prefs", history.Namespace)
	require.NoError(t, err)

	myList, err := mylist.NewService(listStore)
	require.NoError(t, err)
	hist, err := history.NewService(histStore)
	require.NoError(t, err)

	gw := mocks.NewMockGateway(ctrl)
	svc, err := browse.NewService(gw, myList, hist)
	require.NoError(t, err)
	return fixture{gw: gw, svc: svc, history: hist, myList: myList}
}

func movies(slugs ...string) []models.Movie {
	out := make([]models.Movie, len(slugs))
	for i, s := range slugs {
		out[i] = models.Movie{Slug: s}
	}
	return out
}

func slugsOf(ms []models.Movie) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Slug
	}
	return out
}

func TestSuggestionsByLeadActor(t *testing.T) {
	f := newFixture(t)
	movie := models.Movie{Slug: "bo-gia", Actor: []string{"Trấn Thành", "Tuấn Trần"}}

	f.gw.EXPECT().Search(gomock.Any(), "Trấn Thành", 10).
		Return(models.SearchResponse{Movies: movies("bo-gia", "nha-ba-nu", "bo-tu-bao-thu")}, nil)

	row := f.svc.Suggestions(context.Background(), movie)
	assert.Equal(t, "More with Trấn Thành", row.Title)
	assert.Equal(t, []string{"nha-ba-nu", "bo-tu-bao-thu"}, slugsOf(row.Movies))
}

func TestSuggestionsEmptyActorSearchUsesCategory(t *testing.T) {
	f := newFixture(t)
	movie := models.Movie{Slug: "lonely", Actor: []string{"Nobody"}}

	gomock.InOrder(
		f.gw.EXPECT().Search(gomock.Any(), "Nobody", 10).Return(models.SearchResponse{Movies: []models.Movie{}}, nil),
		f.gw.EXPECT().Catalog(gomock.Any(), gateway.CatalogQuery{Category: gateway.CategoryPhimLe, Limit: 15}).
			Return(models.CatalogResponse{Movies: movies("x", "y")}, nil),
	)

	row := f.svc.Suggestions(context.Background(), movie)
	assert.Equal(t, browse.SuggestedHeader, row.Title)
	assert.Equal(t, []string{"x", "y"}, slugsOf(row.Movies))
}

func TestSuggestionsFallBackToCategory(t *testing.T) {
	f := newFixture(t)
	var many []string
	for i := 0; i < 15; i++ {
		many = append(many, fmt.Sprintf("series-%d", i))
	}

	f.gw.EXPECT().Catalog(gomock.Any(), gateway.CatalogQuery{Category: gateway.CategoryPhimBo, Limit: 15}).
		Return(models.CatalogResponse{Movies: movies(many...)}, nil)

	row := f.svc.Suggestions(context.Background(), models.Movie{Slug: "series-3", Type: "series"})
	assert.Equal(t, browse.SuggestedHeader, row.Title)
	require.Len(t, row.Movies, 10)
	assert.NotContains(t, slugsOf(row.Movies), "series-3")

	f.gw.EXPECT().Catalog(gomock.Any(), gateway.CatalogQuery{Category: gateway.CategoryPhimLe, Limit: 15}).
		Return(models.CatalogResponse{}, gateway.ErrUnavailable)
	row = f.svc.Suggestions(context.Background(), models.Movie{Slug: "single"})
	assert.Equal(t, browse.SuggestedHeader, row.Title)
	assert.Empty(t, row.Movies)
}

func TestForYouPicksTrendingSection(t *testing.T) {
	f := newFixture(t)
	f.gw.EXPECT().Home(gomock.Any()).Return(models.CuratedHomeResponse{Sections: []models.HomeSection{
		{Title: "Mới cập nhật", Movies: movies("new")},
		{Title: "Phim Hot", Movies: movies("hot-1", "hot-2")},
	}}, nil)

	row := f.svc.ForYou(context.Background())
	assert.Equal(t, "For Your Interest", row.Title)
	assert.Equal(t, []string{"hot-1", "hot-2"}, slugsOf(row.Movies))
}

func TestForYouFallsBackToSecondSection(t *testing.T) {
	f := newFixture(t)
	var many []string
	for i := 0; i < 12; i++ {
		many = append(many, fmt.Sprintf("m-%d", i))
	}
	f.gw.EXPECT().Home(gomock.Any()).Return(models.CuratedHomeResponse{Sections: []models.HomeSection{
		{Title: "A", Movies: movies("a")},
		{Title: "B", Movies: movies(many...)},
	}}, nil)

	row := f.svc.ForYou(context.Background())
	require.Len(t, row.Movies, 10)
	assert.Equal(t, "m-0", row.Movies[0].Slug)

	f.gw.EXPECT().Home(gomock.Any()).Return(models.CuratedHomeResponse{Sections: []models.HomeSection{{Title: "Only"}}}, nil)
	assert.Empty(t, f.svc.ForYou(context.Background()).Movies)
}

func TestDetailsMergesAndLoadsRows(t *testing.T) {
	f := newFixture(t)
	var detail models.MovieDetailResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"movie":{"name":"Bố Già","content":"Story","actor":["Trấn Thành"]},
		"episodes":[{"server_name":"Vietsub","server_data":[{"name":"Full","link_m3u8":"https://cdn/full.m3u8"}]}]
	}`), &detail))

	f.gw.EXPECT().Movie(gomock.Any(), "bo-gia").Return(detail, nil)
	f.gw.EXPECT().Search(gomock.Any(), "Trấn Thành", 10).Return(models.SearchResponse{Movies: movies("other")}, nil)
	f.gw.EXPECT().Home(gomock.Any()).Return(models.CuratedHomeResponse{Sections: []models.HomeSection{{Title: "Top 10", Movies: movies("top")}}}, nil)

	view := f.svc.Details(context.Background(), models.Movie{Slug: "bo-gia"})
	assert.Equal(t, "Bố Già", view.Movie.Name)
	assert.Equal(t, "Story", view.Movie.Content)
	require.Len(t, view.EpisodeServers, 1)
	assert.Equal(t, "Vietsub", view.EpisodeServers[0].ServerName)
	assert.Equal(t, []string{"other"}, slugsOf(view.Suggestions.Movies))
	assert.Equal(t, []string{"top"}, slugsOf(view.ForYou.Movies))
}

func TestDetailsFailOpen(t *testing.T) {
	f := newFixture(t)
	basic := models.Movie{Slug: "mat-biec", Name: "Mắt Biếc"}

	f.gw.EXPECT().Movie(gomock.Any(), "mat-biec").Return(models.MovieDetailResponse{}, gateway.ErrUnavailable)
	f.gw.EXPECT().Catalog(gomock.Any(), gomock.Any()).Return(models.CatalogResponse{}, gateway.ErrUnavailable)
	f.gw.EXPECT().Home(gomock.Any()).Return(models.CuratedHomeResponse{}, gateway.ErrUnavailable)

	view := f.svc.Details(context.Background(), basic)
	assert.Equal(t, basic, view.Movie)
	assert.Empty(t, view.EpisodeServers)
	assert.Empty(t, view.Suggestions.Movies)
	assert.Empty(t, view.ForYou.Movies)
}

func TestPlayRecordsHistory(t *testing.T) {
	f := newFixture(t)
	movie := models.Movie{Slug: "bo-gia"}

	f.gw.EXPECT().Stream(gomock.Any(), "bo-gia", 2).Return(models.StreamResponse{StreamURL: "https://cdn/2.m3u8"}, nil)

	url, err := f.svc.Play(context.Background(), movie, 2)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/2.m3u8", url)
	assert.Equal(t, []string{"bo-gia"}, slugsOf(f.history.List()))
}

func TestPlayWithoutStream(t *testing.T) {
	f := newFixture(t)
	movie := models.Movie{Slug: "bo-gia"}

	f.gw.EXPECT().Stream(gomock.Any(), "bo-gia", 1).Return(models.StreamResponse{}, nil)
	_, err := f.svc.Play(context.Background(), movie, 1)
	assert.ErrorIs(t, err, browse.ErrStreamUnavailable)

	f.gw.EXPECT().Stream(gomock.Any(), "bo-gia", 1).Return(models.StreamResponse{}, gateway.ErrUnavailable)
	_, err = f.svc.Play(context.Background(), movie, 1)
	assert.True(t, errors.Is(err, gateway.ErrUnavailable))

	assert.False(t, f.history.HasHistory())
}

func TestToggleMyList(t *testing.T) {
	f := newFixture(t)
	movie := models.Movie{Slug: "bo-gia"}

	inList, err := f.svc.ToggleMyList(movie)
	require.NoError(t, err)
	assert.True(t, inList)
	assert.True(t, f.myList.Contains(movie))

	inList, err = f.svc.ToggleMyList(movie)
	require.NoError(t, err)
	assert.False(t, inList)
}

func TestNewServiceRequiresGateway(t *testing.T) {
	_, err := browse.NewService(nil, nil, nil)
	assert.ErrorIs(t, err, browse.ErrGatewayRequired)
}
