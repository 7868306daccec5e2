package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aurastyle/wardrobe-be/internal/models"
)

// stripFences removes an optional markdown code fence wrapping a
// model response, e.g. "```json\n{...}\n```".
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag on the opening fence line.
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseAnalysis parses a classification response into a strict
// GarmentAnalysis. Parse failures and out-of-enum categories are
// ErrAnalysisFailed; there is no best-effort defaulting.
func parseAnalysis(text string) (models.GarmentAnalysis, error) {
	var raw struct {
		Category    string   `json:"category"`
		Color       string   `json:"color"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		return models.GarmentAnalysis{}, fmt.Errorf("%w: %v", models.ErrAnalysisFailed, err)
	}

	category, err := models.ParseCategory(raw.Category)
	if err != nil {
		return models.GarmentAnalysis{}, fmt.Errorf("%w: %v", models.ErrAnalysisFailed, err)
	}
	if raw.Color == "" || raw.Description == "" {
		return models.GarmentAnalysis{}, fmt.Errorf("%w: missing color or description", models.ErrAnalysisFailed)
	}

	if raw.Tags == nil {
		raw.Tags = []string{}
	}
	return models.GarmentAnalysis{
		Category:    category,
		Color:       raw.Color,
		Description: raw.Description,
		Tags:        raw.Tags,
	}, nil
}

// parseSuggestion parses an outfit reasoning response into a strict
// OutfitSuggestion.
func parseSuggestion(text string) (models.OutfitSuggestion, error) {
	var suggestion models.OutfitSuggestion
	if err := json.Unmarshal([]byte(stripFences(text)), &suggestion); err != nil {
		return models.OutfitSuggestion{}, fmt.Errorf("%w: %v", models.ErrSuggestionFailed, err)
	}
	if len(suggestion.SelectedItemIDs) == 0 || suggestion.StyleName == "" || suggestion.VisualPrompt == "" {
		return models.OutfitSuggestion{}, fmt.Errorf("%w: incomplete suggestion", models.ErrSuggestionFailed)
	}
	return suggestion, nil
}
