package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const maxIngredients = 20

// ChatCompleter is the slice of the OpenAI client the recipe service
// needs; tests substitute a fake.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// RecipeResult is the envelope returned by recipe generation.
type RecipeResult struct {
	Success           bool     `json:"success"`
	Recipe            string   `json:"recipe,omitempty"`
	IngredientsUsed   []string `json:"ingredients_used,omitempty"`
	Cuisine           string   `json:"cuisine,omitempty"`
	DietaryPreference string   `json:"dietary_preference,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// SubstitutionsResult is the envelope returned by substitution requests.
type SubstitutionsResult struct {
	Success       bool     `json:"success"`
	Ingredient    string   `json:"ingredient,omitempty"`
	Reason        string   `json:"reason,omitempty"`
	FlavorProfile string   `json:"flavor_profile,omitempty"`
	Substitutions []string `json:"substitutions,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// RecipeService generates recipes and ingredient substitutions through
// the OpenAI chat-completion API.
type RecipeService struct {
	client ChatCompleter
	model  string
	logger zerolog.Logger
}

// NewRecipeService creates a RecipeService backed by the real OpenAI
// client.
func NewRecipeService(apiKey, model string, logger zerolog.Logger) *RecipeService {
	return NewRecipeServiceWithClient(openai.NewClient(apiKey), model, logger)
}

// NewRecipeServiceWithClient creates a RecipeService with an explicit
// completion backend.
func NewRecipeServiceWithClient(client ChatCompleter, model string, logger zerolog.Logger) *RecipeService {
	return &RecipeService{client: client, model: model, logger: logger}
}

// GenerateRecipe builds a recipe from the given ingredients and
// preferences. cookingTime of zero means no time constraint.
func (s *RecipeService) GenerateRecipe(ctx context.Context, ingredients []string, cuisine, dietaryPreference, style string, cookingTime int) *RecipeResult {
	if len(ingredients) == 0 {
		return &RecipeResult{Success: false, Error: "At least one ingredient is required"}
	}
	if len(ingredients) > maxIngredients {
		return &RecipeResult{Success: false, Error: fmt.Sprintf("Too many ingredients (maximum %d)", maxIngredients)}
	}

	var cookingTimeText string
	if cookingTime > 0 {
		cookingTimeText = fmt.Sprintf(" within %d minutes", cookingTime)
	}
	var dietaryText string
	if dietaryPreference != "" && dietaryPreference != "none" {
		dietaryText = fmt.Sprintf(" that is %s", dietaryPreference)
	}

	prompt := fmt.Sprintf(`Create a %s recipe%s in %s style%s using these ingredients: %s.

Return the recipe as a structured response with:
- A creative title
- List of all ingredients needed (you can add common pantry items)
- Clear, step-by-step cooking instructions
- Estimated cooking time
- Difficulty level
- Number of servings
- Any helpful tips or variations`,
		style, dietaryText, cuisine, cookingTimeText, strings.Join(ingredients, ", "))

	s.logger.Info().
		Int("ingredients", len(ingredients)).
		Str("cuisine", cuisine).
		Msg("generating recipe")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a professional chef. Create practical, delicious recipes.",
			},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate recipe")
		return &RecipeResult{Success: false, Error: fmt.Sprintf("Failed to generate recipe: %v", err)}
	}
	if len(resp.Choices) == 0 {
		return &RecipeResult{Success: false, Error: "Failed to generate recipe: no response from API"}
	}

	return &RecipeResult{
		Success:           true,
		Recipe:            resp.Choices[0].Message.Content,
		IngredientsUsed:   ingredients,
		Cuisine:           cuisine,
		DietaryPreference: dietaryPreference,
	}
}

// SuggestSubstitutions proposes replacements for a single ingredient.
func (s *RecipeService) SuggestSubstitutions(ctx context.Context, ingredient, reason, flavorProfile string) *SubstitutionsResult {
	if strings.TrimSpace(ingredient) == "" {
		return &SubstitutionsResult{Success: false, Error: "Ingredient cannot be empty"}
	}

	prompt := fmt.Sprintf(`Suggest 3-5 good substitutions for %s for %s of %s.
For each substitution, provide:
- The substitute ingredient
- Why it's a good substitute
- Any adjustments needed in quantity or preparation

Format the response as a clear, bulleted list.`, ingredient, reason, flavorProfile)

	s.logger.Info().Str("ingredient", ingredient).Str("reason", reason).Msg("generating substitutions")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   800,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate substitutions")
		return &SubstitutionsResult{
			Success:    false,
			Ingredient: ingredient,
			Error:      fmt.Sprintf("Failed to generate substitutions: %v", err),
		}
	}
	if len(resp.Choices) == 0 {
		return &SubstitutionsResult{
			Success:    false,
			Ingredient: ingredient,
			Error:      "Failed to generate substitutions: no response from API",
		}
	}

	var substitutions []string
	for _, line := range strings.Split(resp.Choices[0].Message.Content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			substitutions = append(substitutions, trimmed)
		}
	}

	return &SubstitutionsResult{
		Success:       true,
		Ingredient:    ingredient,
		Reason:        reason,
		FlavorProfile: flavorProfile,
		Substitutions: substitutions,
	}
}
