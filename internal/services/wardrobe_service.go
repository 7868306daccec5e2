package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aurastyle/wardrobe-be/internal/imaging"
	"github.com/aurastyle/wardrobe-be/internal/models"
)

// Garment photos are stored downscaled; user try-on photos keep a
// little more resolution so the render preserves identity features.
const (
	garmentMaxDimension = 800
	garmentQuality      = 70

	UserPhotoMaxDimension = 1024
	UserPhotoQuality      = 80
)

// GarmentAnalyzer classifies a garment photo. Implemented by the AI
// gateway; faked in tests.
type GarmentAnalyzer interface {
	AnalyzeGarment(ctx context.Context, photo string) (models.GarmentAnalysis, error)
}

// Notifier pushes a message to every connected client of one user.
// Implemented by the websocket hub.
type Notifier interface {
	NotifyUser(userID, action string, payload interface{})
}

// WardrobeServiceProvider defines the interface for wardrobe services.
type WardrobeServiceProvider interface {
	ListWardrobe(userID string) ([]models.ClothingItem, error)
	AddItem(ctx context.Context, userID string, photo []byte) (models.ClothingItem, error)
	DeleteItem(userID, itemID string) error
}

// WardrobeService owns the add/list/delete lifecycle of clothing
// items, including the normalize-then-classify ingest pipeline.
type WardrobeService struct {
	db       *sql.DB
	analyzer GarmentAnalyzer
	events   EventServiceProvider
	notifier Notifier
}

// NewWardrobeService creates a new WardrobeService.
func NewWardrobeService(db *sql.DB, analyzer GarmentAnalyzer, events EventServiceProvider, notifier Notifier) *WardrobeService {
	return &WardrobeService{db: db, analyzer: analyzer, events: events, notifier: notifier}
}

// ListWardrobe returns every item owned by the user, newest first.
// The store itself guarantees no ordering; sorting happens here.
func (s *WardrobeService) ListWardrobe(userID string) ([]models.ClothingItem, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, image, category, color, description, tags_json, created_at FROM wardrobe_items WHERE user_id = ?",
		userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	defer rows.Close()

	var items []models.ClothingItem
	for rows.Next() {
		item, err := scanClothingItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})
	return items, nil
}

// AddItem normalizes an uploaded garment photo, has the provider
// classify it, and persists the resulting item. Items are immutable
// once created.
func (s *WardrobeService) AddItem(ctx context.Context, userID string, photo []byte) (models.ClothingItem, error) {
	normalized, err := imaging.Normalize(photo, garmentMaxDimension, garmentQuality)
	if err != nil {
		return models.ClothingItem{}, err
	}

	analysis, err := s.analyzer.AnalyzeGarment(ctx, normalized)
	if err != nil {
		return models.ClothingItem{}, err
	}

	item := models.ClothingItem{
		ID:          uuid.New().String(),
		UserID:      userID,
		Image:       normalized,
		Category:    analysis.Category,
		Color:       analysis.Color,
		Description: analysis.Description,
		Tags:        analysis.Tags,
		AddedAt:     time.Now().UTC(),
	}

	tagsJSON, err := json.Marshal(item.Tags)
	if err != nil {
		return models.ClothingItem{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	_, err = s.db.Exec(
		"INSERT INTO wardrobe_items(id, user_id, image, category, color, description, tags_json, created_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?)",
		item.ID, item.UserID, item.Image, string(item.Category), item.Color, item.Description, string(tagsJSON), item.AddedAt)
	if err != nil {
		return models.ClothingItem{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	if s.events != nil {
		if err := s.events.CreateEvent("wardrobe.item.added", "info",
			fmt.Sprintf("Added %s %s to wardrobe", item.Color, item.Category), &userID); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to record wardrobe event")
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyUser(userID, "wardrobe.item.added", item)
	}
	return item, nil
}

// DeleteItem removes one item, scoped to its owner.
func (s *WardrobeService) DeleteItem(userID, itemID string) error {
	res, err := s.db.Exec("DELETE FROM wardrobe_items WHERE id = ? AND user_id = ?", itemID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanClothingItem(rows *sql.Rows) (models.ClothingItem, error) {
	var item models.ClothingItem
	var category, tagsJSON string
	if err := rows.Scan(&item.ID, &item.UserID, &item.Image, &category, &item.Color, &item.Description, &tagsJSON, &item.AddedAt); err != nil {
		return models.ClothingItem{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	item.Category = models.Category(category)
	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
			return models.ClothingItem{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
	}
	return item, nil
}
