package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"streamflixtv/handlers"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter builds the bridge router with every route mounted.
func NewRouter(myListHandler *handlers.MyListHandler, historyHandler *handlers.HistoryHandler) *mux.Router {
	r := mux.NewRouter()
	Register(r, myListHandler, historyHandler)
	return r
}

// Register mounts the bridge endpoints onto the provided router.
func Register(r *mux.Router, myListHandler *handlers.MyListHandler, historyHandler *handlers.HistoryHandler) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)

	// Fixed paths go before /mylist/{slug} so they are not captured as slugs.
	api.HandleFunc("/mylist/search", myListHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/mylist/search", handlers.Options).Methods(http.MethodOptions)
	api.HandleFunc("/mylist/toggle", myListHandler.Toggle).Methods(http.MethodPost)
	api.HandleFunc("/mylist/toggle", handlers.Options).Methods(http.MethodOptions)
	api.HandleFunc("/mylist", myListHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/mylist", myListHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/mylist", handlers.Options).Methods(http.MethodOptions)
	api.HandleFunc("/mylist/{slug}", myListHandler.Contains).Methods(http.MethodGet)
	api.HandleFunc("/mylist/{slug}", myListHandler.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/mylist/{slug}", handlers.Options).Methods(http.MethodOptions)

	api.HandleFunc("/history/search", historyHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/history/search", handlers.Options).Methods(http.MethodOptions)
	api.HandleFunc("/history", historyHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/history", historyHandler.Record).Methods(http.MethodPost)
	api.HandleFunc("/history", historyHandler.Clear).Methods(http.MethodDelete)
	api.HandleFunc("/history", handlers.Options).Methods(http.MethodOptions)
}
