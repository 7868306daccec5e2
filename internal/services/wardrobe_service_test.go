package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurastyle/wardrobe-be/internal/models"
)

func testPhoto(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 5), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newWardrobeService(t *testing.T, analyzer GarmentAnalyzer) *WardrobeService {
	t.Helper()
	db := newTestDB(t)
	return NewWardrobeService(db, analyzer, NewEventService(db), nil)
}

func TestAddItemRoundTrip(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: models.GarmentAnalysis{
		Category:    models.CategoryTop,
		Color:       "navy",
		Description: "wool sweater",
		Tags:        []string{"casual", "winter"},
	}}
	svc := newWardrobeService(t, analyzer)

	item, err := svc.AddItem(context.Background(), "user-1", testPhoto(t))
	require.NoError(t, err)
	require.Equal(t, 1, analyzer.calls)

	items, err := svc.ListWardrobe("user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	// What went in must come back untouched: no re-normalization on read.
	got := items[0]
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, item.Image, got.Image)
	assert.Equal(t, item.Category, got.Category)
	assert.Equal(t, item.Color, got.Color)
	assert.Equal(t, item.Description, got.Description)
	assert.Equal(t, item.Tags, got.Tags)
}

func TestAddItemRejectsUndecodablePhoto(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	svc := newWardrobeService(t, analyzer)

	_, err := svc.AddItem(context.Background(), "user-1", []byte("not an image"))
	assert.ErrorIs(t, err, models.ErrImageDecode)
	assert.Zero(t, analyzer.calls)
}

func TestAddItemPropagatesAnalysisFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{err: models.ErrAnalysisFailed}
	svc := newWardrobeService(t, analyzer)

	_, err := svc.AddItem(context.Background(), "user-1", testPhoto(t))
	assert.ErrorIs(t, err, models.ErrAnalysisFailed)

	// Nothing persisted on failure.
	items, err := svc.ListWardrobe("user-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListWardrobeIsOwnerScoped(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: models.GarmentAnalysis{
		Category: models.CategoryShoes, Color: "white", Description: "sneakers", Tags: []string{},
	}}
	svc := newWardrobeService(t, analyzer)

	_, err := svc.AddItem(context.Background(), "user-1", testPhoto(t))
	require.NoError(t, err)
	other, err := svc.AddItem(context.Background(), "user-2", testPhoto(t))
	require.NoError(t, err)

	items, err := svc.ListWardrobe("user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEqual(t, other.ID, items[0].ID)
}

func TestListWardrobeNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewWardrobeService(db, nil, nil, nil)

	// Insert directly with controlled timestamps; the store makes no
	// ordering promise, the service sorts.
	older := time.Now().UTC().Add(-time.Hour)
	newer := time.Now().UTC()
	for _, row := range []struct {
		id string
		at time.Time
	}{{"old", older}, {"new", newer}} {
		_, err := db.Exec(
			"INSERT INTO wardrobe_items(id, user_id, image, category, color, description, tags_json, created_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?)",
			row.id, "user-1", "data:image/jpeg;base64,", "top", "red", "shirt", "[]", row.at)
		require.NoError(t, err)
	}

	items, err := svc.ListWardrobe("user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "old", items[1].ID)
}

func TestDeleteItemOwnerScoped(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: models.GarmentAnalysis{
		Category: models.CategoryHat, Color: "black", Description: "beanie", Tags: []string{},
	}}
	svc := newWardrobeService(t, analyzer)

	item, err := svc.AddItem(context.Background(), "user-1", testPhoto(t))
	require.NoError(t, err)

	// Another user cannot delete it.
	assert.ErrorIs(t, svc.DeleteItem("user-2", item.ID), models.ErrNotFound)

	require.NoError(t, svc.DeleteItem("user-1", item.ID))
	assert.ErrorIs(t, svc.DeleteItem("user-1", item.ID), models.ErrNotFound)
}
