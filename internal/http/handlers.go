package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := a.Records.List(r.Context(), 100)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load movies"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": movies})
}

// movieDetailHandler serves the raw detail blob for one title hash.
func (a *App) movieDetailHandler(w http.ResponseWriter, r *http.Request) {
	titleHash := chi.URLParam(r, "titleHash")
	if titleHash == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "titleHash required"})
		return
	}

	payload, err := a.Details.Get(r.Context(), titleHash)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load detail"})
		return
	}
	if payload == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
