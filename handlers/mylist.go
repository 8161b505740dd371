package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"streamflixtv/models"
	"streamflixtv/services/mylist"
)

type myListService interface {
	List() []models.Movie
	Add(movie models.Movie) error
	Remove(movie models.Movie) error
	Contains(movie models.Movie) bool
	Toggle(movie models.Movie) (bool, error)
	Search(query string) []models.Movie
}

var _ myListService = (*mylist.Service)(nil)

type MyListHandler struct {
	Service myListService
}

func NewMyListHandler(service myListService) *MyListHandler {
	return &MyListHandler{Service: service}
}

type membershipResponse struct {
	Slug   string `json:"slug"`
	InList bool   `json:"inList"`
}

func (h *MyListHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.List())
}

func (h *MyListHandler) Add(w http.ResponseWriter, r *http.Request) {
	movie, err := decodeMovie(r)
	if err != nil {
		writeJSONError(w, "invalid movie payload", http.StatusBadRequest)
		return
	}

	if err := h.Service.Add(movie); err != nil {
		writeJSONError(w, err.Error(), myListStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, membershipResponse{Slug: movie.Slug, InList: true})
}

// Contains reports whether the slug in the path is in the list.
func (h *MyListHandler) Contains(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(mux.Vars(r)["slug"])
	if slug == "" {
		writeJSONError(w, "slug is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, membershipResponse{
		Slug:   slug,
		InList: h.Service.Contains(models.Movie{Slug: slug}),
	})
}

func (h *MyListHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	movie, err := decodeMovie(r)
	if err != nil {
		writeJSONError(w, "invalid movie payload", http.StatusBadRequest)
		return
	}

	inList, err := h.Service.Toggle(movie)
	if err != nil {
		writeJSONError(w, err.Error(), myListStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, membershipResponse{Slug: movie.Slug, InList: inList})
}

func (h *MyListHandler) Remove(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(mux.Vars(r)["slug"])
	if err := h.Service.Remove(models.Movie{Slug: slug}); err != nil {
		writeJSONError(w, err.Error(), myListStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MyListHandler) Search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Search(r.URL.Query().Get("q")))
}

func myListStatus(err error) int {
	if errors.Is(err, mylist.ErrSlugRequired) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
