package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"streamflixtv/config"
	"streamflixtv/internal/prefs"
	"streamflixtv/services/browse"
	"streamflixtv/services/gateway"
	"streamflixtv/services/history"
	"streamflixtv/services/mylist"
	"streamflixtv/services/update"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: streamflixtv [-config path] <command> [args]

Commands:
  home [-category c]           home rows, or the four rows of one category
  catalog [flags]              one catalog page (-category, -page, -limit, -sort)
  movie <slug>                 full details with suggestions
  search [-limit n] <keyword>  search the catalog
  stream [-episode n] <slug>   resolve a stream and record it in history
  health                       backend health
  mylist [list|add|remove|toggle|search] [slug|query]
  history [list|clear|search] [query]
  update                       check GitHub for a newer TV build
  serve                        run the local bridge API
`)
}

// app holds the wired services shared by every command.
type app struct {
	settings config.Settings
	gateway  *gateway.Client
	browse   *browse.Service
	myList   *mylist.Service
	history  *history.Service
	checker  *update.Checker
	stores   []prefs.Store
	out      io.Writer
}

func main() {
	configFlag := flag.String("config", "", "path to settings.json (default $"+config.EnvConfigPath+" or cache/settings.json)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	// Init config manager and load settings (creates defaults if missing)
	cfgManager := config.NewManager(config.ResolvePath(*configFlag))
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}
	setupLogging(settings.Log)

	a, err := newApp(settings, os.Stdout)
	if err != nil {
		log.Fatalf("failed to initialise: %v", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, flag.Args()); err != nil {
		a.Close()
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

// setupLogging tees the standard logger into a rotating file.
func setupLogging(cfg config.LogConfig) {
	if cfg.File == "" {
		return
	}
	logDir := filepath.Dir(cfg.File)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		return
	}
	fileWriter := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	// CLI output goes to stdout; logs go to stderr and the file
	log.SetOutput(io.MultiWriter(os.Stderr, fileWriter))
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

func newApp(settings config.Settings, out io.Writer) (*app, error) {
	a := &app{settings: settings, out: out}

	listStore, err := prefs.Open(settings.Storage, mylist.Namespace)
	if err != nil {
		return nil, fmt.Errorf("open my list store: %w", err)
	}
	a.stores = append(a.stores, listStore)

	histStore, err := prefs.Open(settings.Storage, history.Namespace)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open history store: %w", err)
	}
	a.stores = append(a.stores, histStore)

	if a.myList, err = mylist.NewService(listStore); err != nil {
		a.Close()
		return nil, err
	}
	if a.history, err = history.NewService(histStore); err != nil {
		a.Close()
		return nil, err
	}

	a.gateway = gateway.New(settings.API, nil)
	if a.browse, err = browse.NewService(a.gateway, a.myList, a.history); err != nil {
		a.Close()
		return nil, err
	}
	a.checker = update.NewChecker(settings.Update, nil)
	return a, nil
}

func (a *app) Close() {
	for _, s := range a.stores {
		if err := s.Close(); err != nil {
			log.Printf("[main] close store: %v", err)
		}
	}
	a.stores = nil
}
