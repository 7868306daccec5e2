package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/aurastyle/wardrobe-be/internal/auth"
	"github.com/aurastyle/wardrobe-be/internal/imaging"
	"github.com/aurastyle/wardrobe-be/internal/models"
	"github.com/aurastyle/wardrobe-be/internal/services"
)

// StylistHandler exposes the outfit workflow over HTTP. The state
// machine itself lives in the service; handlers only shape requests
// and responses.
type StylistHandler struct {
	service *services.StylistService
}

// NewStylistHandler creates a new StylistHandler.
func NewStylistHandler(service *services.StylistService) *StylistHandler {
	return &StylistHandler{service: service}
}

// GeneratePayload carries the situational parameters and an optional
// try-on photo for a full generation run.
type GeneratePayload struct {
	models.OutfitRequest
	UserPhoto string `json:"userPhotoBase64,omitempty"`
}

// SwapPayload confirms replacing one selected item with another.
type SwapPayload struct {
	TargetItemID string `json:"targetItemId"`
	NewItemID    string `json:"newItemId"`
}

// State returns the caller's current workflow snapshot.
func (h *StylistHandler) State(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.service.State(userID))
}

// Generate runs the full suggest-then-render workflow. The request
// blocks until both provider calls finish; progress is streamed over
// the websocket in the meantime.
func (h *StylistHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload GeneratePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var photo []byte
	if payload.UserPhoto != "" {
		var err error
		_, photo, err = imaging.FromDataURI(payload.UserPhoto)
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}

	state, err := h.service.Generate(r.Context(), userID, payload.OutfitRequest, photo)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Styling run failed")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SwapCandidates lists same-category alternatives for one selected item.
func (h *StylistHandler) SwapCandidates(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	candidates, err := h.service.SwapCandidates(userID, chi.URLParam(r, "itemId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// Swap confirms a substitution. Only the in-memory selection changes;
// the response snapshot carries the recomputed dirty flag.
func (h *StylistHandler) Swap(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	var payload SwapPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.service.ConfirmSwap(userID, payload.TargetItemID, payload.NewItemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Regenerate re-renders the image for the current selection and
// overwrites the saved record in place.
func (h *StylistHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	state, err := h.service.Regenerate(r.Context(), userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Regeneration failed")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Reset discards the session and returns to the input step.
func (h *StylistHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Reset(userID))
}
