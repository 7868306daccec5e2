package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurastyle/wardrobe-be/internal/models"
)

func sampleOutfit(id, userID string, createdAt time.Time) models.SavedOutfit {
	return models.SavedOutfit{
		ID:     id,
		UserID: userID,
		Items: []models.ClothingItem{
			{ID: "item-1", UserID: userID, Category: models.CategoryTop, Color: "white", Description: "shirt", Tags: []string{}},
		},
		Suggestion: models.OutfitSuggestion{
			SelectedItemIDs: []string{"item-1"},
			StyleName:       "Clean Lines",
			Reasoning:       "simple",
			VisualPrompt:    "a person in a white shirt",
		},
		Image:     "data:image/png;base64,AA==",
		CreatedAt: createdAt,
	}
}

func TestSaveOutfitUpsertsByID(t *testing.T) {
	svc := NewOutfitService(newTestDB(t))

	original := sampleOutfit("outfit-1", "user-1", time.Now().UTC().Add(-time.Minute))
	require.NoError(t, svc.SaveOutfit(original))

	// Overwrite in place: same ID, new image and items.
	updated := original
	updated.Image = "data:image/png;base64,AQ=="
	updated.Items = append(updated.Items, models.ClothingItem{
		ID: "item-2", UserID: "user-1", Category: models.CategoryBottom, Color: "blue", Description: "jeans", Tags: []string{},
	})
	updated.CreatedAt = time.Now().UTC()
	require.NoError(t, svc.SaveOutfit(updated))

	history, err := svc.ListHistory("user-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "outfit-1", history[0].ID)
	assert.Equal(t, updated.Image, history[0].Image)
	assert.Len(t, history[0].Items, 2)
}

func TestListHistoryNewestFirstAndOwnerScoped(t *testing.T) {
	svc := NewOutfitService(newTestDB(t))

	require.NoError(t, svc.SaveOutfit(sampleOutfit("old", "user-1", time.Now().UTC().Add(-time.Hour))))
	require.NoError(t, svc.SaveOutfit(sampleOutfit("new", "user-1", time.Now().UTC())))
	require.NoError(t, svc.SaveOutfit(sampleOutfit("theirs", "user-2", time.Now().UTC())))

	history, err := svc.ListHistory("user-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "new", history[0].ID)
	assert.Equal(t, "old", history[1].ID)
}

func TestDeleteOutfitOwnerScoped(t *testing.T) {
	svc := NewOutfitService(newTestDB(t))

	require.NoError(t, svc.SaveOutfit(sampleOutfit("outfit-1", "user-1", time.Now().UTC())))

	assert.ErrorIs(t, svc.DeleteOutfit("user-2", "outfit-1"), models.ErrNotFound)
	require.NoError(t, svc.DeleteOutfit("user-1", "outfit-1"))

	history, err := svc.ListHistory("user-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}
