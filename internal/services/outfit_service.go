package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aurastyle/wardrobe-be/internal/models"
)

// OutfitServiceProvider defines the interface for saved-outfit services.
type OutfitServiceProvider interface {
	ListHistory(userID string) ([]models.SavedOutfit, error)
	SaveOutfit(outfit models.SavedOutfit) error
	DeleteOutfit(userID, outfitID string) error
}

// OutfitService persists completed styling results. SaveOutfit is an
// upsert by ID: the same call path creates a record after generation
// and fully overwrites it after a regenerate.
type OutfitService struct {
	db *sql.DB
}

// NewOutfitService creates a new OutfitService.
func NewOutfitService(db *sql.DB) *OutfitService {
	return &OutfitService{db: db}
}

// ListHistory returns every saved outfit owned by the user, newest
// first (sorted here, not by the store).
func (s *OutfitService) ListHistory(userID string) ([]models.SavedOutfit, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, items_json, suggestion_json, image, created_at FROM outfits WHERE user_id = ?",
		userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var outfits []models.SavedOutfit
	for rows.Next() {
		var outfit models.SavedOutfit
		var itemsJSON, suggestionJSON string
		if err := rows.Scan(&outfit.ID, &outfit.UserID, &itemsJSON, &suggestionJSON, &outfit.Image, &outfit.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
		if err := json.Unmarshal([]byte(itemsJSON), &outfit.Items); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
		if err := json.Unmarshal([]byte(suggestionJSON), &outfit.Suggestion); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
		outfits = append(outfits, outfit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	sort.Slice(outfits, func(i, j int) bool {
		return outfits[i].CreatedAt.After(outfits[j].CreatedAt)
	})
	return outfits, nil
}

// SaveOutfit writes an outfit, replacing any existing record with the
// same ID. Atomic at the single-record level; no cross-record
// transaction is needed or provided.
func (s *OutfitService) SaveOutfit(outfit models.SavedOutfit) error {
	itemsJSON, err := json.Marshal(outfit.Items)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	suggestionJSON, err := json.Marshal(outfit.Suggestion)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO outfits(id, user_id, items_json, suggestion_json, image, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		outfit.ID, outfit.UserID, string(itemsJSON), string(suggestionJSON), outfit.Image, outfit.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return nil
}

// DeleteOutfit removes one saved outfit, scoped to its owner.
func (s *OutfitService) DeleteOutfit(userID, outfitID string) error {
	res, err := s.db.Exec("DELETE FROM outfits WHERE id = ? AND user_id = ?", outfitID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
