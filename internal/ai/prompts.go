package ai

import (
	"fmt"
	"strings"

	"github.com/aurastyle/wardrobe-be/internal/models"
)

const classifyPrompt = `You are a fashion catalog assistant. Analyze the clothing item in this photo.
Respond with ONLY a JSON object in this exact shape, no commentary:
{
  "category": one of "top", "bottom", "outerwear", "shoes", "bag", "scarf", "hat", "accessory",
  "color": "the dominant color",
  "description": "a short description of the item, cut and material",
  "tags": ["a few style tags"]
}`

const tryOnPreamble = `Show the person in this photo wearing the outfit described below.
Keep the same person: preserve their face, body shape, skin tone and hair exactly.
Full body shot, natural pose, photorealistic.
Outfit: `

const modelShotPreamble = `A full body fashion photograph of a model, 3:4 portrait aspect ratio,
studio quality, photorealistic, high resolution. Outfit: `

// suggestPrompt summarizes the wardrobe and the situational
// parameters into the reasoning request.
func suggestPrompt(wardrobe []models.ClothingItem, req models.OutfitRequest) string {
	var sb strings.Builder
	sb.WriteString("You are a personal fashion stylist. Compose one outfit using ONLY items from this wardrobe:\n")
	for _, item := range wardrobe {
		fmt.Fprintf(&sb, "- id: %s | category: %s | color: %s | description: %s\n",
			item.ID, item.Category, item.Color, item.Description)
	}
	fmt.Fprintf(&sb, `
Situation:
- weather: %s
- occasion: %s
- mood: %s
- style goal: %s

Pick at least two items that work together. Respond with ONLY a JSON object, no commentary:
{
  "selectedItemIds": ["ids of the chosen items"],
  "styleName": "a short evocative name for the look",
  "reasoning": "why these pieces work for the situation",
  "generatedVisualPrompt": "a detailed text-to-image prompt describing a person wearing exactly these items"
}`, req.Weather, req.Occasion, req.Mood, req.StyleGoal)
	return sb.String()
}

// RegenerationPrompt rebuilds a visual prompt deterministically from
// the currently selected items, independent of the prompt the
// original suggestion carried. Used when the user re-renders after a
// swap.
func RegenerationPrompt(items []models.ClothingItem, req models.OutfitRequest) string {
	descriptions := make([]string, 0, len(items))
	for _, item := range items {
		descriptions = append(descriptions, fmt.Sprintf("%s %s (%s)", item.Color, item.Description, item.Category))
	}
	return fmt.Sprintf("A full body fashion shot. Model wearing: %s. Style: %s. Occasion: %s. High quality, photorealistic, 4k.",
		strings.Join(descriptions, ", "), req.StyleGoal, req.Occasion)
}
