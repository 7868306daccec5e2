package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/aurastyle/wardrobe-be/internal/auth"
	"github.com/aurastyle/wardrobe-be/internal/models"
	"github.com/aurastyle/wardrobe-be/internal/services"
)

// OutfitHandler handles HTTP requests for the saved-outfit history.
type OutfitHandler struct {
	service services.OutfitServiceProvider
}

// NewOutfitHandler creates a new OutfitHandler.
func NewOutfitHandler(service services.OutfitServiceProvider) *OutfitHandler {
	return &OutfitHandler{service: service}
}

// List returns the caller's outfit history, newest first. A failed
// read degrades to an empty list.
func (h *OutfitHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	outfits, err := h.service.ListHistory(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list outfit history")
		outfits = nil
	}
	if outfits == nil {
		outfits = []models.SavedOutfit{}
	}
	writeJSON(w, http.StatusOK, outfits)
}

// Delete removes one saved outfit owned by the caller.
func (h *OutfitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	if err := h.service.DeleteOutfit(userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
