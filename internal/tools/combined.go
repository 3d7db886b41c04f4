package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mealpilot/recipe-mcp/internal/logmeal"
	"github.com/mealpilot/recipe-mcp/internal/service"
)

// CombinedArgs is the input for analyze_and_suggest_recipe.
type CombinedArgs struct {
	ImageInput string `json:"image_input" jsonschema:"image URL, data URL, base64 string, file path, or stored filename"`
	Cuisine    string `json:"cuisine,omitempty" jsonschema:"cuisine style for the suggested recipe (default: any)"`
}

// CombinedResult chains image analysis into recipe generation.
type CombinedResult struct {
	Success           bool                    `json:"success"`
	Message           string                  `json:"message,omitempty"`
	RecognizedFoods   []string                `json:"recognized_foods,omitempty"`
	NutritionInfo     json.RawMessage         `json:"nutrition_info,omitempty"`
	RecipeSuggestions []*service.RecipeResult `json:"recipe_suggestions"`
	Analysis          *logmeal.AnalysisResult `json:"analysis,omitempty"`
	AnalysisID        json.Number             `json:"analysis_id,omitempty"`
	Error             string                  `json:"error,omitempty"`
}

func registerCombinedTools(server *mcp.Server, deps *Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_and_suggest_recipe",
		Description: "Recognize the food in an image and suggest a recipe built around it",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args CombinedArgs) (*mcp.CallToolResult, CombinedResult, error) {
		analysis := deps.Analysis.Analyze(ctx, args.ImageInput)
		if !analysis.Success {
			return nil, CombinedResult{
				Success:           false,
				Error:             analysis.Error,
				Analysis:          analysis,
				RecipeSuggestions: []*service.RecipeResult{},
			}, nil
		}

		if analysis.RecognizedDish == nil {
			return nil, CombinedResult{
				Success:           true,
				Message:           "No specific food items recognized in the image",
				Analysis:          analysis,
				RecipeSuggestions: []*service.RecipeResult{},
			}, nil
		}

		cuisine := defaultString(args.Cuisine, "any")
		recognized := []string{analysis.RecognizedDish.Name}

		recipe := deps.Recipes.GenerateRecipe(ctx, recognized, cuisine, "none", "detailed", 0)

		suggestions := []*service.RecipeResult{}
		if recipe.Success {
			suggestions = append(suggestions, recipe)
		}

		return nil, CombinedResult{
			Success:           true,
			RecognizedFoods:   recognized,
			NutritionInfo:     analysis.IngredientsInfo,
			RecipeSuggestions: suggestions,
			Analysis:          analysis,
			AnalysisID:        analysis.ImageAnalysisID,
		}, nil
	})
}
