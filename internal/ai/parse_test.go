package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurastyle/wardrobe-be/internal/models"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with language", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestParseAnalysis(t *testing.T) {
	text := "```json\n{\"category\":\"top\",\"color\":\"navy\",\"description\":\"wool sweater\",\"tags\":[\"casual\",\"winter\"]}\n```"
	analysis, err := parseAnalysis(text)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryTop, analysis.Category)
	assert.Equal(t, "navy", analysis.Color)
	assert.Equal(t, "wool sweater", analysis.Description)
	assert.Equal(t, []string{"casual", "winter"}, analysis.Tags)
}

func TestParseAnalysisRejectsUnknownCategory(t *testing.T) {
	// A category outside the closed set must fail, never default.
	text := "```json\n{\"category\":\"scarf-ish\",\"color\":\"red\",\"description\":\"a thing\",\"tags\":[]}\n```"
	_, err := parseAnalysis(text)
	require.ErrorIs(t, err, models.ErrAnalysisFailed)
}

func TestParseAnalysisRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not json", "a lovely blue top"},
		{"missing color", `{"category":"top","description":"x","tags":[]}`},
		{"missing description", `{"category":"top","color":"blue","tags":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAnalysis(tt.in)
			assert.ErrorIs(t, err, models.ErrAnalysisFailed)
		})
	}
}

func TestParseAnalysisAllowsEmptyTags(t *testing.T) {
	analysis, err := parseAnalysis(`{"category":"shoes","color":"white","description":"leather sneakers"}`)
	require.NoError(t, err)
	assert.NotNil(t, analysis.Tags)
	assert.Empty(t, analysis.Tags)
}

func TestParseSuggestion(t *testing.T) {
	text := "```json\n" +
		`{"selectedItemIds":["a","b"],"styleName":"City Layers","reasoning":"because","generatedVisualPrompt":"a person wearing..."}` +
		"\n```"
	suggestion, err := parseSuggestion(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, suggestion.SelectedItemIDs)
	assert.Equal(t, "City Layers", suggestion.StyleName)
}

func TestParseSuggestionRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty response", ""},
		{"no items", `{"selectedItemIds":[],"styleName":"x","reasoning":"y","generatedVisualPrompt":"z"}`},
		{"no prompt", `{"selectedItemIds":["a"],"styleName":"x","reasoning":"y"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSuggestion(tt.in)
			assert.ErrorIs(t, err, models.ErrSuggestionFailed)
		})
	}
}

func TestRegenerationPromptIsBuiltFromItems(t *testing.T) {
	items := []models.ClothingItem{
		{Color: "black", Description: "leather jacket", Category: models.CategoryOuterwear},
		{Color: "blue", Description: "slim jeans", Category: models.CategoryBottom},
	}
	req := models.OutfitRequest{StyleGoal: "street", Occasion: "weekend"}

	prompt := RegenerationPrompt(items, req)
	assert.Contains(t, prompt, "black leather jacket (outerwear)")
	assert.Contains(t, prompt, "blue slim jeans (bottom)")
	assert.Contains(t, prompt, "street")
	assert.Contains(t, prompt, "weekend")

	// Deterministic for identical input.
	assert.Equal(t, prompt, RegenerationPrompt(items, req))
}

func TestSuggestPromptListsEveryItem(t *testing.T) {
	wardrobe := []models.ClothingItem{
		{ID: "id-1", Category: models.CategoryTop, Color: "white", Description: "t-shirt"},
		{ID: "id-2", Category: models.CategoryShoes, Color: "red", Description: "runners"},
	}
	prompt := suggestPrompt(wardrobe, models.OutfitRequest{Weather: "rainy", Occasion: "office", Mood: "calm", StyleGoal: "minimal"})

	for _, item := range wardrobe {
		assert.Contains(t, prompt, item.ID)
		assert.Contains(t, prompt, item.Description)
	}
	for _, param := range []string{"rainy", "office", "calm", "minimal"} {
		assert.Contains(t, prompt, param)
	}
	// The response contract must be spelled out.
	assert.True(t, strings.Contains(prompt, "selectedItemIds"))
}
