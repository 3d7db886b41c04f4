// Package logmeal wraps the LogMeal food-recognition API: image
// segmentation, best-match reduction over the candidate tree, and
// ingredient/nutrition enrichment. Every call returns a uniform
// success/error envelope; failures never propagate as raw errors.
package logmeal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/rs/zerolog"
)

const requestTimeout = 60 * time.Second

// Client is an HTTP client for the LogMeal API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a LogMeal client with the given credentials.
func NewClient(apiKey, baseURL string, logger zerolog.Logger) *Client {
	logger.Info().Msg("LogMeal client initialized")
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// RecognizeFood submits image bytes to the segmentation endpoint and
// normalizes the response. The backend spells the candidate forest as
// segmentation_results at the top level, but recognition_results has been
// observed too; both are accepted, preferring the former.
func (c *Client) RecognizeFood(ctx context.Context, imageBytes []byte) *RecognitionResult {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="image.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := writer.CreatePart(header)
	if err != nil {
		return &RecognitionResult{Success: false, Error: fmt.Sprintf("API request failed: %v", err)}
	}
	if _, err := part.Write(imageBytes); err != nil {
		return &RecognitionResult{Success: false, Error: fmt.Sprintf("API request failed: %v", err)}
	}
	if err := writer.Close(); err != nil {
		return &RecognitionResult{Success: false, Error: fmt.Sprintf("API request failed: %v", err)}
	}

	url := c.baseURL + "/image/segmentation/complete"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return &RecognitionResult{Success: false, Error: fmt.Sprintf("API request failed: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("LogMeal API request failed")
		return &RecognitionResult{Success: false, Error: fmt.Sprintf("API request failed: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RecognitionResult{Success: false, Error: fmt.Sprintf("API request failed: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().Int("status", resp.StatusCode).Str("body", string(respBody)).Msg("LogMeal API error response")
		return &RecognitionResult{
			Success: false,
			Error:   fmt.Sprintf("API request failed: status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var raw struct {
		SegmentationResults []SegmentGroup `json:"segmentation_results"`
		RecognitionResults  []SegmentGroup `json:"recognition_results"`
		ImageAnalysisID     json.Number    `json:"image_analysis_id"`
	}
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return &RecognitionResult{Success: false, Error: fmt.Sprintf("Recognition failed: %v", err)}
	}

	groups := raw.SegmentationResults
	if len(groups) == 0 {
		groups = raw.RecognitionResults
	}

	return &RecognitionResult{
		Success:         true,
		Groups:          groups,
		ImageAnalysisID: raw.ImageAnalysisID,
	}
}

// GetRecipeIngredients fetches the ingredient document for a dish id.
func (c *Client) GetRecipeIngredients(ctx context.Context, dishID string) *IngredientsResult {
	c.logger.Info().Str("dish_id", dishID).Msg("getting ingredients for dish")

	payload, err := json.Marshal(map[string]string{"id": dishID})
	if err != nil {
		return &IngredientsResult{Success: false, Error: fmt.Sprintf("Failed to get ingredients: %v", err)}
	}

	respBody, err := c.postJSON(ctx, "/nutrition/recipe/ingredients", payload)
	if err != nil {
		c.logger.Error().Err(err).Msg("recipe ingredients request failed")
		return &IngredientsResult{Success: false, Error: fmt.Sprintf("Failed to get ingredients: %v", err)}
	}

	return &IngredientsResult{
		Success:     true,
		RecipeID:    dishID,
		Ingredients: json.RawMessage(respBody),
	}
}

// GetNutritionInfo fetches nutritional information for a set of food
// names.
func (c *Client) GetNutritionInfo(ctx context.Context, foods []string) *NutritionResult {
	c.logger.Info().Int("count", len(foods)).Msg("getting nutrition info")

	payload, err := json.Marshal(map[string][]string{"foods": foods})
	if err != nil {
		return &NutritionResult{Success: false, Error: fmt.Sprintf("Nutrition analysis failed: %v", err)}
	}

	respBody, err := c.postJSON(ctx, "/nutrition/recipe/nutritionalInfo", payload)
	if err != nil {
		c.logger.Error().Err(err).Msg("nutrition info request failed")
		return &NutritionResult{Success: false, Error: fmt.Sprintf("Nutrition analysis failed: %v", err)}
	}

	return &NutritionResult{
		Success:       true,
		NutritionInfo: json.RawMessage(respBody),
	}
}

func (c *Client) postJSON(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// AnalyzeImage runs the complete pipeline over raw image bytes:
// segmentation, best-match reduction and best-effort ingredient
// enrichment. A failed enrichment degrades the result instead of failing
// it; IngredientsStatus records which happened.
func (c *Client) AnalyzeImage(ctx context.Context, imageBytes []byte) *AnalysisResult {
	recognition := c.RecognizeFood(ctx, imageBytes)
	if !recognition.Success {
		return &AnalysisResult{Success: false, Error: recognition.Error}
	}

	best := BestMatch(recognition.Groups)
	if best == nil {
		return &AnalysisResult{
			Success:           true,
			RecognizedDish:    nil,
			Message:           "No specific food items recognized with sufficient confidence",
			IngredientsStatus: IngredientsSkipped,
			ImageAnalysisID:   recognition.ImageAnalysisID,
		}
	}

	c.logger.Info().
		Str("name", best.Name).
		Float64("prob", best.Probability).
		Msg("top detection")

	result := &AnalysisResult{
		Success: true,
		RecognizedDish: &RecognizedDish{
			Name:       best.Name,
			ID:         best.ID,
			Confidence: best.Probability,
			FoodFamily: best.FoodFamily,
		},
		IngredientsInfo:   json.RawMessage(`{}`),
		IngredientsStatus: IngredientsSkipped,
		ImageAnalysisID:   recognition.ImageAnalysisID,
	}

	if best.ID == "" {
		return result
	}

	ingredients := c.GetRecipeIngredients(ctx, best.ID.String())
	if !ingredients.Success {
		// Best-effort lookup: partial information is acceptable.
		result.IngredientsStatus = IngredientsUnavailable
		return result
	}

	result.IngredientsInfo = ingredients.Ingredients
	result.IngredientsStatus = IngredientsOK
	return result
}
