package models

import "time"

// OutfitRequest carries the situational parameters the user picks
// before asking for a suggestion.
type OutfitRequest struct {
	Weather   string `json:"weather"`
	Occasion  string `json:"occasion"`
	Mood      string `json:"mood"`
	StyleGoal string `json:"styleGoal"`
}

// OutfitSuggestion is the provider's proposal: which wardrobe items to
// wear, why, and a prompt for rendering the look. Selection order
// carries no meaning; comparisons treat SelectedItemIDs as a set.
type OutfitSuggestion struct {
	SelectedItemIDs []string `json:"selectedItemIds"`
	StyleName       string   `json:"styleName"`
	Reasoning       string   `json:"reasoning"`
	VisualPrompt    string   `json:"generatedVisualPrompt"`
}

// SavedOutfit is a completed workflow result. Items is a snapshot of
// the full records selected at save time, not just their IDs, so the
// history remains renderable after a wardrobe item is deleted.
// Regeneration overwrites the record in place under the same ID.
type SavedOutfit struct {
	ID         string           `json:"id"`
	UserID     string           `json:"userId"`
	Items      []ClothingItem   `json:"items"`
	Suggestion OutfitSuggestion `json:"suggestion"`
	Image      string           `json:"generatedImageBase64,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}
