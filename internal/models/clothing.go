package models

import (
	"fmt"
	"time"
)

// Category is the closed set of garment kinds the classifier may
// assign. Anything outside this set is a classification failure, not
// a default.
type Category string

const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryOuterwear Category = "outerwear"
	CategoryShoes     Category = "shoes"
	CategoryBag       Category = "bag"
	CategoryScarf     Category = "scarf"
	CategoryHat       Category = "hat"
	CategoryAccessory Category = "accessory"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryTop,
	CategoryBottom,
	CategoryOuterwear,
	CategoryShoes,
	CategoryBag,
	CategoryScarf,
	CategoryHat,
	CategoryAccessory,
}

// ParseCategory validates a raw category string against the closed set.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// GarmentAnalysis is the classifier's structured verdict for one
// garment photo.
type GarmentAnalysis struct {
	Category    Category `json:"category"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ClothingItem is a single garment in a user's wardrobe. The photo is
// embedded as a JPEG data URI so the record is self-contained.
// Items are immutable after creation; the only lifecycle operations
// are add and delete.
type ClothingItem struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Image       string    `json:"imageBase64"`
	Category    Category  `json:"category"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	AddedAt     time.Time `json:"addedAt"`
}
