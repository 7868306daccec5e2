package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/aurastyle/wardrobe-be/internal/auth"
	"github.com/aurastyle/wardrobe-be/internal/imaging"
	"github.com/aurastyle/wardrobe-be/internal/models"
	"github.com/aurastyle/wardrobe-be/internal/services"
)

// Garment uploads are capped well above the normalized size; the
// normalizer shrinks whatever arrives.
const maxUploadBytes = 20 << 20

// WardrobeHandler handles HTTP requests for wardrobe items.
type WardrobeHandler struct {
	service services.WardrobeServiceProvider
}

// NewWardrobeHandler creates a new WardrobeHandler.
func NewWardrobeHandler(service services.WardrobeServiceProvider) *WardrobeHandler {
	return &WardrobeHandler{service: service}
}

// List returns the caller's wardrobe, newest first. A failed read
// degrades to an empty list: the client must still be able to render.
func (h *WardrobeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	items, err := h.service.ListWardrobe(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list wardrobe")
		items = nil
	}
	if items == nil {
		items = []models.ClothingItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Add ingests a garment photo: multipart "photo" field or a JSON body
// with an imageBase64 data URI. The photo is normalized, classified
// by the provider, and stored as a new immutable item.
func (h *WardrobeHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	photo, err := readPhoto(r, "photo")
	if err != nil {
		writeServiceError(w, err)
		return
	}

	item, err := h.service.AddItem(r.Context(), userID, photo)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to add wardrobe item")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Delete removes one wardrobe item owned by the caller.
func (h *WardrobeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	if err := h.service.DeleteItem(userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readPhoto extracts raw image bytes from either a multipart form
// field or a JSON {"imageBase64": "data:..."} body.
func readPhoto(r *http.Request, field string) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, models.ErrImageDecode
		}
		file, _, err := r.FormFile(field)
		if err != nil {
			return nil, models.ErrImageDecode
		}
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return nil, models.ErrImageDecode
		}
		return data, nil
	}

	var payload struct {
		Image string `json:"imageBase64"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&payload); err != nil || payload.Image == "" {
		return nil, models.ErrImageDecode
	}
	_, data, err := imaging.FromDataURI(payload.Image)
	if err != nil {
		return nil, err
	}
	return data, nil
}
