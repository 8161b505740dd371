package history

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"streamflixtv/internal/prefs"
	"streamflixtv/models"
	"streamflixtv/services/normalize"
)

const (
	// Namespace and Key locate the history blob in the preferences store.
	Namespace = "streamflix_history"
	Key       = "watch_history"

	// MaxEntries bounds the history; the oldest entries fall off the end.
	MaxEntries = 50
)

var (
	ErrStoreRequired = errors.New("preferences store not provided")
	ErrSlugRequired  = errors.New("movie slug is required")
)

// Service persists the recently watched titles, most recent first.
type Service struct {
	mu    sync.Mutex
	store prefs.Store
	limit int
}

// NewService creates a watch history service backed by store.
func NewService(store prefs.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Service{store: store, limit: MaxEntries}, nil
}

// Add records movie as the most recently watched title. An existing entry
// with the same slug moves to the front instead of being duplicated.
func (s *Service) Add(movie models.Movie) error {
	if strings.TrimSpace(movie.Slug) == "" {
		return ErrSlugRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := prefs.ReadMovies(s.store, Key)
	if err != nil {
		return fmt.Errorf("read watch history: %w", err)
	}

	updated := make([]models.Movie, 0, len(entries)+1)
	updated = append(updated, movie)
	for _, m := range entries {
		if m.Slug != movie.Slug {
			updated = append(updated, m)
		}
	}
	if len(updated) > s.limit {
		updated = updated[:s.limit]
	}

	if err := prefs.WriteMovies(s.store, Key, updated); err != nil {
		return fmt.Errorf("save watch history: %w", err)
	}
	return nil
}

// List returns the history, most recent first. Read failures yield an empty list.
func (s *Service) List() []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := prefs.ReadMovies(s.store, Key)
	if err != nil {
		log.Printf("[history] read failed, returning empty history: %v", err)
		return []models.Movie{}
	}
	return entries
}

// HasHistory reports whether anything has been watched.
func (s *Service) HasHistory() bool {
	return len(s.List()) > 0
}

// Clear removes the whole history.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(Key); err != nil {
		return fmt.Errorf("clear watch history: %w", err)
	}
	return nil
}

// Search matches query against watched titles, ignoring case and diacritics.
func (s *Service) Search(query string) []models.Movie {
	return normalize.Search(s.List(), query)
}
