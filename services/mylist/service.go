package mylist

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
	// Namespace and Key locate the list blob in the preferences store.
	Namespace = "streamflix_mylist"
	Key       = "my_list"
)

var (
	ErrStoreRequired = errors.New("preferences store not provided")
	ErrSlugRequired  = errors.New("movie slug is required")
)

// Service manages the user's saved titles. Newest additions come first and
// each slug appears at most once.
type Service struct {
	mu    sync.Mutex
	store prefs.Store
}

// NewService creates a My List service backed by store.
func NewService(store prefs.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Service{store: store}, nil
}

// Add puts movie at the front of the list unless its slug is already saved.
func (s *Service) Add(movie models.Movie) error {
	if err := requireSlug(movie); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := prefs.ReadMovies(s.store, Key)
	if err != nil {
		return fmt.Errorf("read my list: %w", err)
	}
	if indexOf(list, movie.Slug) >= 0 {
		return nil
	}

	list = append([]models.Movie{movie}, list...)
	if err := prefs.WriteMovies(s.store, Key, list); err != nil {
		return fmt.Errorf("save my list: %w", err)
	}
	return nil
}

// Remove drops every entry with movie's slug.
func (s *Service) Remove(movie models.Movie) error {
	if err := requireSlug(movie); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := prefs.ReadMovies(s.store, Key)
	if err != nil {
		return fmt.Errorf("read my list: %w", err)
	}

	kept := make([]models.Movie, 0, len(list))
	for _, m := range list {
		if m.Slug != movie.Slug {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	if err := prefs.WriteMovies(s.store, Key, kept); err != nil {
		return fmt.Errorf("save my list: %w", err)
	}
	return nil
}

// Contains reports whether movie's slug is saved.
func (s *Service) Contains(movie models.Movie) bool {
	if strings.TrimSpace(movie.Slug) == "" {
		return false
	}
	return indexOf(s.List(), movie.Slug) >= 0
}

// Toggle adds movie when absent and removes it when present, returning the
// new membership state.
func (s *Service) Toggle(movie models.Movie) (bool, error) {
	if err := requireSlug(movie); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := prefs.ReadMovies(s.store, Key)
	if err != nil {
		return false, fmt.Errorf("read my list: %w", err)
	}

	member := true
	if idx := indexOf(list, movie.Slug); idx >= 0 {
		list = append(list[:idx:idx], list[idx+1:]...)
		member = false
	} else {
		list = append([]models.Movie{movie}, list...)
	}

	if err := prefs.WriteMovies(s.store, Key, list); err != nil {
		return !member, fmt.Errorf("save my list: %w", err)
	}
	return member, nil
}

// List returns the saved titles, newest first. Read failures yield an empty list.
func (s *Service) List() []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := prefs.ReadMovies(s.store, Key)
	if err != nil {
		log.Printf("[mylist] read failed, returning empty list: %v", err)
		return []models.Movie{}
	}
	return list
}

// HasItems reports whether anything is saved.
func (s *Service) HasItems() bool {
	return len(s.List()) > 0
}

// Search matches query against saved titles, ignoring case and diacritics.
func (s *Service) Search(query string) []models.Movie {
	return normalize.Search(s.List(), query)
}

func requireSlug(movie models.Movie) error {
	if strings.TrimSpace(movie.Slug) == "" {
		return ErrSlugRequired
	}
	return nil
}

func indexOf(list []models.Movie, slug string) int {
	for i, m := range list {
		if m.Slug == slug {
			return i
		}
	}
	return -1
}
