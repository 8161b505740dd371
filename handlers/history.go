package handlers

import (
	"errors"
	"net/http"

	"streamflixtv/models"
	"streamflixtv/services/history"
)

type historyService interface {
	List() []models.Movie
	Add(movie models.Movie) error
	Clear() error
	Search(query string) []models.Movie
}

var _ historyService = (*history.Service)(nil)

type HistoryHandler struct {
	Service historyService
}

func NewHistoryHandler(service historyService) *HistoryHandler {
	return &HistoryHandler{Service: service}
}

// List returns the watch history, most recent first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.List())
}

// Record adds the posted movie to the front of the history.
func (h *HistoryHandler) Record(w http.ResponseWriter, r *http.Request) {
	movie, err := decodeMovie(r)
	if err != nil {
		writeJSONError(w, "invalid movie payload", http.StatusBadRequest)
		return
	}

	if err := h.Service.Add(movie); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, history.ErrSlugRequired) {
			status = http.StatusBadRequest
		}
		writeJSONError(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Clear(); err != nil {
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HistoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Search(r.URL.Query().Get("q")))
}
