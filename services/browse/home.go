package browse

import (
	"context"
	"log"

	"github.com/sourcegraph/conc"

	"streamflixtv/models"
	"streamflixtv/services/gateway"
)

const (
	extraRowLimit    = 15
	categoryRowLimit = 15
	fallbackLimit    = 30

	ContinueWatchingHeader = "Continue Watching"
	MyListHeader           = "My List"
	RecommendedHeader      = "Recommended for You"
	AcclaimedHeader        = "Critically Acclaimed"
	PopularMoviesHeader    = "Popular Movies"
)

// Home assembles the landing rows: continue watching and My List from the
// local stores, the curated sections, then the recommended and acclaimed
// catalog rows. Rows without movies are left out. When the curated sections
// cannot be loaded a single popular-movies row is returned instead.
func (s *Service) Home(ctx context.Context) ([]models.Row, error) {
	home, err := s.gw.Home(ctx)
	if err != nil {
		log.Printf("[browse] curated home failed, using catalog fallback: %v", err)
		return s.popularMovies(ctx)
	}
	if len(home.Sections) == 0 {
		return s.popularMovies(ctx)
	}

	var recommended, acclaimed models.Row
	var wg conc.WaitGroup
	wg.Go(func() {
		recommended = s.catalogRow(ctx, RecommendedHeader, gateway.CatalogQuery{Sort: gateway.SortViews, Limit: extraRowLimit})
	})
	wg.Go(func() {
		acclaimed = s.catalogRow(ctx, AcclaimedHeader, gateway.CatalogQuery{Sort: gateway.SortRating, Limit: extraRowLimit})
	})
	wg.Wait()

	var rows []models.Row
	if s.history != nil {
		rows = appendRow(rows, models.Row{Title: ContinueWatchingHeader, Movies: s.history.List()})
	}
	if s.myList != nil {
		rows = appendRow(rows, models.Row{Title: MyListHeader, Movies: s.myList.List()})
	}
	for _, sec := range home.Sections {
		rows = appendRow(rows, models.Row{Title: sec.Title, Movies: sec.Movies})
	}
	rows = appendRow(rows, recommended)
	rows = appendRow(rows, acclaimed)

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// CategoryRows loads four views of one category in parallel: latest, top
// rated, new releases and a trending row taken from the second page of the
// latest listing. Failed views are skipped.
func (s *Service) CategoryRows(ctx context.Context, category string) ([]models.Row, error) {
	label := CategoryLabel(category)
	queries := []struct {
		title string
		q     gateway.CatalogQuery
	}{
		{label + " - Latest", gateway.CatalogQuery{Category: category, Limit: categoryRowLimit, Sort: gateway.SortModified}},
		{label + " - Top Rated", gateway.CatalogQuery{Category: category, Limit: categoryRowLimit, Sort: gateway.SortRating}},
		{label + " - New Releases", gateway.CatalogQuery{Category: category, Limit: categoryRowLimit, Sort: gateway.SortYear}},
		{label + " - Trending", gateway.CatalogQuery{Category: category, Page: 2, Limit: categoryRowLimit, Sort: gateway.SortModified}},
	}

	fetched := make([]models.Row, len(queries))
	var wg conc.WaitGroup
	for i, item := range queries {
		wg.Go(func() {
			fetched[i] = s.catalogRow(ctx, item.title, item.q)
		})
	}
	wg.Wait()

	var rows []models.Row
	for _, row := range fetched {
		rows = appendRow(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

// CategoryLabel is the row prefix shown for a catalog category.
func CategoryLabel(category string) string {
	switch category {
	case gateway.CategoryPhimBo:
		return "Series"
	case gateway.CategoryPhimLe:
		return "Movies"
	case gateway.CategoryHoatHinh:
		return "Anime"
	case "phim-han":
		return "Korea"
	case "phim-trung":
		return "China"
	default:
		return "Catalog"
	}
}

func (s *Service) popularMovies(ctx context.Context) ([]models.Row, error) {
	page, err := s.gw.Catalog(ctx, gateway.CatalogQuery{Category: gateway.CategoryPhimLe, Limit: fallbackLimit})
	if err != nil {
		log.Printf("[browse] popular movies fallback failed: %v", err)
		return nil, ErrNoRows
	}
	if len(page.Movies) == 0 {
		return nil, ErrNoRows
	}
	return []models.Row{{Title: PopularMoviesHeader, Movies: page.Movies}}, nil
}

func (s *Service) catalogRow(ctx context.Context, title string, q gateway.CatalogQuery) models.Row {
	page, err := s.gw.Catalog(ctx, q)
	if err != nil {
		log.Printf("[browse] %q row failed: %v", title, err)
		return models.Row{Title: title}
	}
	return models.Row{Title: title, Movies: page.Movies}
}

func appendRow(rows []models.Row, row models.Row) []models.Row {
	if len(row.Movies) == 0 {
		return rows
	}
	return append(rows, row)
}
