// Package browse assembles the detail, suggestion and playback flows on top of
// the gateway and the local lists.
package browse

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks streamflixtv/services/browse Gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sourcegraph/conc"

	"streamflixtv/models"
	"streamflixtv/services/gateway"
	"streamflixtv/services/history"
	"streamflixtv/services/mylist"
	"streamflixtv/services/normalize"
)

const (
	suggestionSearchLimit  = 10
	suggestionCatalogLimit = 15
	rowSize                = 10

	SuggestedHeader = "Suggested Videos"
	ForYouHeader    = "For Your Interest"
)

var (
	ErrStreamUnavailable = errors.New("stream unavailable")
	ErrGatewayRequired   = errors.New("gateway not provided")
	ErrNoRows            = errors.New("nothing to show")
)

// Gateway is the subset of the backend client used by the browse flows.
type Gateway interface {
	Home(ctx context.Context) (models.CuratedHomeResponse, error)
	Catalog(ctx context.Context, q gateway.CatalogQuery) (models.CatalogResponse, error)
	Movie(ctx context.Context, slug string) (models.MovieDetailResponse, error)
	Search(ctx context.Context, keyword string, limit int) (models.SearchResponse, error)
	Stream(ctx context.Context, slug string, episode int) (models.StreamResponse, error)
}

// Service drives the screens that combine remote data with My List and history.
type Service struct {
	gw      Gateway
	myList  *mylist.Service
	history *history.Service
}

// NewService wires the browse flows. The list services may be nil, in which
// case toggling and history recording are skipped.
func NewService(gw Gateway, myList *mylist.Service, hist *history.Service) (*Service, error) {
	if gw == nil {
		return nil, ErrGatewayRequired
	}
	return &Service{gw: gw, myList: myList, history: hist}, nil
}

// Details loads the full record for movie and the two rows shown under it.
// A failed detail fetch keeps the record the caller already had.
func (s *Service) Details(ctx context.Context, movie models.Movie) models.DetailView {
	view := models.DetailView{Movie: movie}

	resp, err := s.gw.Movie(ctx, movie.Slug)
	if err != nil {
		log.Printf("[browse] detail %s failed, showing basic record: %v", movie.Slug, err)
	} else {
		view.Movie = normalize.MergeDetail(movie, resp)
		view.EpisodeServers = normalize.Episodes(resp.Episodes)
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		view.Suggestions = s.Suggestions(ctx, view.Movie)
	})
	wg.Go(func() {
		view.ForYou = s.ForYou(ctx)
	})
	wg.Wait()

	return view
}

// Suggestions returns more titles with the movie's lead actor, or titles of
// the same kind when there is no actor or the actor search finds nothing.
// The movie itself is excluded.
func (s *Service) Suggestions(ctx context.Context, movie models.Movie) models.Row {
	if len(movie.Actor) > 0 {
		actor := strings.TrimSpace(movie.Actor[0])
		if actor != "" {
			res, err := s.gw.Search(ctx, actor, suggestionSearchLimit)
			if err != nil {
				log.Printf("[browse] suggestions for %s failed: %v", movie.Slug, err)
				return models.Row{Title: "More with " + actor, Movies: []models.Movie{}}
			}
			if len(res.Movies) > 0 {
				return models.Row{Title: "More with " + actor, Movies: excluding(res.Movies, movie.Slug)}
			}
		}
	}

	category := gateway.CategoryPhimLe
	if normalize.IsSeries(movie) {
		category = gateway.CategoryPhimBo
	}
	page, err := s.gw.Catalog(ctx, gateway.CatalogQuery{Category: category, Limit: suggestionCatalogLimit})
	if err != nil {
		log.Printf("[browse] %s suggestions failed: %v", category, err)
		return models.Row{Title: SuggestedHeader, Movies: []models.Movie{}}
	}
	return models.Row{Title: SuggestedHeader, Movies: excluding(page.Movies, movie.Slug)}
}

// ForYou picks the trending row of the curated home screen.
func (s *Service) ForYou(ctx context.Context) models.Row {
	home, err := s.gw.Home(ctx)
	if err != nil {
		log.Printf("[browse] for-you row failed: %v", err)
		return models.Row{Title: ForYouHeader, Movies: []models.Movie{}}
	}
	section, ok := trendingSection(home.Sections)
	if !ok {
		return models.Row{Title: ForYouHeader, Movies: []models.Movie{}}
	}
	return models.Row{Title: ForYouHeader, Movies: head(section.Movies, rowSize)}
}

func trendingSection(sections []models.HomeSection) (models.HomeSection, bool) {
	for _, sec := range sections {
		if strings.Contains(sec.Title, "Hot") || strings.Contains(sec.Title, "Top") {
			return sec, true
		}
	}
	if len(sections) > 1 {
		return sections[1], true
	}
	return models.HomeSection{}, false
}

// Play resolves the stream for episode and records the movie in history.
func (s *Service) Play(ctx context.Context, movie models.Movie, episode int) (string, error) {
	stream, err := s.gw.Stream(ctx, movie.Slug, episode)
	if err != nil {
		return "", fmt.Errorf("resolve stream %s: %w", movie.Slug, err)
	}
	streamURL := strings.TrimSpace(stream.StreamURL)
	if streamURL == "" {
		return "", ErrStreamUnavailable
	}

	if s.history != nil {
		if err := s.history.Add(movie); err != nil {
			log.Printf("[browse] record history for %s: %v", movie.Slug, err)
		}
	}
	return streamURL, nil
}

// ToggleMyList flips membership of movie and returns the new state.
func (s *Service) ToggleMyList(movie models.Movie) (bool, error) {
	if s.myList == nil {
		return false, mylist.ErrStoreRequired
	}
	return s.myList.Toggle(movie)
}

func excluding(movies []models.Movie, slug string) []models.Movie {
	out := make([]models.Movie, 0, min(len(movies), rowSize))
	for _, m := range movies {
		if m.Slug == slug {
			continue
		}
		out = append(out, m)
		if len(out) == rowSize {
			break
		}
	}
	return out
}

func head(movies []models.Movie, n int) []models.Movie {
	if len(movies) > n {
		movies = movies[:n]
	}
	out := make([]models.Movie, len(movies))
	copy(out, movies)
	return out
}
