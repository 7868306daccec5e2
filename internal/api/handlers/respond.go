package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aurastyle/wardrobe-be/internal/models"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the service error taxonomy onto HTTP
// statuses. Everything here is a user-visible notice; nothing is
// fatal to the process.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrDuplicateUsername):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrImageDecode), errors.Is(err, models.ErrPrecondition):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrBusy), errors.Is(err, models.ErrSuperseded):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrAnalysisFailed),
		errors.Is(err, models.ErrSuggestionFailed),
		errors.Is(err, models.ErrRenderFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
