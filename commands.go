package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"streamflixtv/api"
	"streamflixtv/handlers"
	"streamflixtv/models"
	"streamflixtv/services/gateway"
	"streamflixtv/services/normalize"
)

var errUsage = errors.New("invalid arguments, run with -h for usage")

func (a *app) run(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "home":
		return a.home(ctx, rest)
	case "catalog":
		return a.catalog(ctx, rest)
	case "movie":
		return a.movie(ctx, rest)
	case "search":
		return a.search(ctx, rest)
	case "stream":
		return a.stream(ctx, rest)
	case "health":
		return a.health(ctx)
	case "mylist":
		return a.myListCmd(ctx, rest)
	case "history":
		return a.historyCmd(rest)
	case "update":
		return a.update(ctx)
	case "serve":
		return a.serve(ctx)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func (a *app) home(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("home", flag.ContinueOnError)
	category := fs.String("category", gateway.CategoryPhimMoi, "category page (phim-moi for the curated home)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var rows []models.Row
	var err error
	if *category == "" || *category == gateway.CategoryPhimMoi {
		rows, err = a.browse.Home(ctx)
	} else {
		rows, err = a.browse.CategoryRows(ctx, *category)
	}
	if err != nil {
		return err
	}
	for _, row := range rows {
		a.printRow(row)
	}
	return nil
}

func (a *app) catalog(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	category := fs.String("category", gateway.CategoryMovies, "catalog category")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 24, "page size")
	sort := fs.String("sort", gateway.SortModified, "sort order (modified, year, rating, views)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.gateway.Catalog(ctx, gateway.CatalogQuery{Category: *category, Page: *page, Limit: *limit, Sort: *sort})
	if err != nil {
		return err
	}
	a.printRow(models.Row{Title: fmt.Sprintf("%s (page %d)", *category, *page), Movies: res.Movies})
	return nil
}

func (a *app) movie(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	view := a.browse.Details(ctx, models.Movie{Slug: args[0]})
	m := view.Movie

	fmt.Fprintln(a.out, normalize.DisplayTitle(m))
	fmt.Fprintln(a.out, normalize.Subtitle(m))
	if desc := normalize.Description(m); desc != "" {
		fmt.Fprintf(a.out, "\n%s\n", desc)
	}
	if a.myList.Contains(m) {
		fmt.Fprintln(a.out, "\n✓ In My List")
	}
	for i, server := range view.EpisodeServers {
		fmt.Fprintf(a.out, "\n%s\n", normalize.ServerLabel(i, server))
		for j, ep := range server.ServerData {
			fmt.Fprintf(a.out, "  %d. %s\n", j+1, normalize.EpisodeLabel(j, ep))
		}
	}
	fmt.Fprintln(a.out)
	a.printRow(view.Suggestions)
	a.printRow(view.ForYou)
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}
	keyword := strings.Join(fs.Args(), " ")

	res, err := a.gateway.Search(ctx, keyword, *limit)
	if err != nil {
		return err
	}
	a.printRow(models.Row{Title: fmt.Sprintf("Results for %q", keyword), Movies: res.Movies})
	return nil
}

func (a *app) stream(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stream", flag.ContinueOnError)
	episode := fs.Int("episode", 1, "episode number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	movie := a.lookup(ctx, fs.Arg(0))
	streamURL, err := a.browse.Play(ctx, movie, *episode)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, streamURL)
	if strings.Contains(streamURL, ".m3u8") {
		fmt.Fprintln(a.out, a.gateway.ProxyURL(streamURL))
	}
	return nil
}

func (a *app) health(ctx context.Context) error {
	status, err := a.gateway.Health(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(status)
}

func (a *app) myListCmd(ctx context.Context, args []string) error {
	action := "list"
	if len(args) > 0 {
		action, args = args[0], args[1:]
	}

	switch action {
	case "list":
		a.printRow(models.Row{Title: "My List", Movies: a.myList.List()})
		return nil
	case "search":
		a.printRow(models.Row{Title: "My List", Movies: a.myList.Search(strings.Join(args, " "))})
		return nil
	case "add", "remove", "toggle":
		if len(args) != 1 {
			return errUsage
		}
	default:
		return errUsage
	}

	movie := models.Movie{Slug: args[0]}
	switch action {
	case "add":
		if err := a.myList.Add(a.lookup(ctx, movie.Slug)); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added %s to My List\n", movie.Slug)
	case "remove":
		if err := a.myList.Remove(movie); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Removed %s from My List\n", movie.Slug)
	case "toggle":
		if !a.myList.Contains(movie) {
			movie = a.lookup(ctx, movie.Slug)
		}
		inList, err := a.browse.ToggleMyList(movie)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s in My List: %t\n", movie.Slug, inList)
	}
	return nil
}

func (a *app) historyCmd(args []string) error {
	action := "list"
	if len(args) > 0 {
		action, args = args[0], args[1:]
	}

	switch action {
	case "list":
		a.printRow(models.Row{Title: "Watch History", Movies: a.history.List()})
	case "search":
		a.printRow(models.Row{Title: "Watch History", Movies: a.history.Search(strings.Join(args, " "))})
	case "clear":
		if err := a.history.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Watch history cleared")
	default:
		return errUsage
	}
	return nil
}

func (a *app) update(ctx context.Context) error {
	current := a.settings.Update.CurrentVersion
	res, err := a.checker.Check(ctx, current)
	if err != nil {
		return err
	}
	if !res.Available {
		fmt.Fprintf(a.out, "You are up to date! (%s)\n", current)
		return nil
	}
	fmt.Fprintf(a.out, "Version %s is available (current %s)\n", res.Tag, current)
	if res.Asset != nil {
		fmt.Fprintf(a.out, "Download: %s\n", res.Asset.BrowserDownloadURL)
	}
	return nil
}

func (a *app) serve(ctx context.Context) error {
	r := api.NewRouter(handlers.NewMyListHandler(a.myList), handlers.NewHistoryHandler(a.history))

	addr := net.JoinHostPort(a.settings.Bridge.Host, strconv.Itoa(a.settings.Bridge.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[bridge] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("[bridge] shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// lookup returns the full record for slug, or a bare record when the backend
// cannot be reached.
func (a *app) lookup(ctx context.Context, slug string) models.Movie {
	movie := models.Movie{Slug: slug}
	resp, err := a.gateway.Movie(ctx, slug)
	if err != nil {
		log.Printf("[main] detail %s unavailable, storing bare record: %v", slug, err)
		return movie
	}
	return normalize.MergeDetail(movie, resp)
}

func (a *app) printRow(row models.Row) {
	fmt.Fprintf(a.out, "== %s (%d)\n", row.Title, len(row.Movies))
	for _, m := range row.Movies {
		fmt.Fprintf(a.out, "  %-40s %s  [%s]\n", normalize.DisplayTitle(m), normalize.Subtitle(m), m.Slug)
	}
}

func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}
