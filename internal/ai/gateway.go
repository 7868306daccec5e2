package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/aurastyle/wardrobe-be/internal/imaging"
	"github.com/aurastyle/wardrobe-be/internal/models"
)

// Gateway is a thin adapter over the Gemini API. It does input
// shaping (data-URI stripping, framing text) and output shaping
// (fence stripping, strict parse, blob extraction) and nothing else;
// workflow logic lives in the services layer.
type Gateway struct {
	client     *genai.Client
	textModel  string
	imageModel string
	timeout    time.Duration
}

// New creates a Gateway backed by the Gemini API.
func New(ctx context.Context, apiKey, textModel, imageModel string, timeout time.Duration) (*Gateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gateway{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
		timeout:    timeout,
	}, nil
}

// Close releases the underlying client.
func (g *Gateway) Close() error {
	return g.client.Close()
}

// AnalyzeGarment classifies a garment photo into the closed category
// set plus color, description and style tags. A single attempt; any
// empty or unparseable response is ErrAnalysisFailed.
func (g *Gateway) AnalyzeGarment(ctx context.Context, photo string) (models.GarmentAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	mimeType, data, err := imaging.FromDataURI(photo)
	if err != nil {
		return models.GarmentAnalysis{}, err
	}

	model := g.client.GenerativeModel(g.textModel)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(subtype(mimeType), data),
		genai.Text(classifyPrompt),
	)
	if err != nil {
		return models.GarmentAnalysis{}, fmt.Errorf("%w: %v", models.ErrAnalysisFailed, err)
	}

	text, err := firstText(resp)
	if err != nil {
		return models.GarmentAnalysis{}, fmt.Errorf("%w: %v", models.ErrAnalysisFailed, err)
	}
	return parseAnalysis(text)
}

// SuggestOutfit asks the provider to compose an outfit from the
// given wardrobe for the given situation. The wardrobe-size
// precondition is the caller's, not enforced here.
func (g *Gateway) SuggestOutfit(ctx context.Context, wardrobe []models.ClothingItem, req models.OutfitRequest) (models.OutfitSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := g.client.GenerativeModel(g.textModel)
	resp, err := model.GenerateContent(ctx, genai.Text(suggestPrompt(wardrobe, req)))
	if err != nil {
		return models.OutfitSuggestion{}, fmt.Errorf("%w: %v", models.ErrSuggestionFailed, err)
	}

	text, err := firstText(resp)
	if err != nil {
		return models.OutfitSuggestion{}, fmt.Errorf("%w: %v", models.ErrSuggestionFailed, err)
	}
	return parseSuggestion(text)
}

// RenderOutfitImage generates a photo for the given visual prompt.
// With a user photo the provider is asked to depict that same person
// wearing the outfit; without one a generic full-body model shot is
// requested. Returns the first inline image of the response as a
// data URI.
func (g *Gateway) RenderOutfitImage(ctx context.Context, visualPrompt, userPhoto string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var parts []genai.Part
	if userPhoto != "" {
		mimeType, data, err := imaging.FromDataURI(userPhoto)
		if err != nil {
			return "", err
		}
		parts = append(parts,
			genai.ImageData(subtype(mimeType), data),
			genai.Text(tryOnPreamble+visualPrompt),
		)
	} else {
		parts = append(parts, genai.Text(modelShotPreamble+visualPrompt))
	}

	model := g.client.GenerativeModel(g.imageModel)
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrRenderFailed, err)
	}

	return firstImage(resp)
}

// firstText extracts the concatenated text parts of the first candidate.
func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text in response")
	}
	return sb.String(), nil
}

// firstImage extracts the first inline image blob of the first
// candidate as a data URI.
func firstImage(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no content generated", models.ErrRenderFailed)
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
			mimeType := blob.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return imaging.ToDataURI(mimeType, blob.Data), nil
		}
	}
	return "", fmt.Errorf("%w: no image payload in response", models.ErrRenderFailed)
}

// subtype maps "image/jpeg" to the format string the SDK expects.
func subtype(mimeType string) string {
	if idx := strings.Index(mimeType, "/"); idx >= 0 {
		return mimeType[idx+1:]
	}
	return mimeType
}
