package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mealpilot/recipe-mcp/internal/service"
)

// GenerateRecipeArgs is the input for the generate_recipe tool.
type GenerateRecipeArgs struct {
	Ingredients       []string `json:"ingredients" jsonschema:"list of available ingredients (1-20 items)"`
	Cuisine           string   `json:"cuisine,omitempty" jsonschema:"cuisine style, e.g. italian or thai (default: any)"`
	DietaryPreference string   `json:"dietary_preference,omitempty" jsonschema:"dietary preference such as vegetarian or vegan (default: none)"`
	Style             string   `json:"style,omitempty" jsonschema:"recipe style: detailed or quick (default: detailed)"`
	CookingTime       int      `json:"cooking_time,omitempty" jsonschema:"maximum cooking time in minutes (0 for no limit)"`
}

// SubstitutionArgs is the input for the suggest_ingredient_substitutions
// tool.
type SubstitutionArgs struct {
	Ingredient    string `json:"ingredient" jsonschema:"the ingredient to substitute"`
	Reason        string `json:"reason,omitempty" jsonschema:"why a substitute is needed (default: allergy)"`
	FlavorProfile string `json:"flavor_profile,omitempty" jsonschema:"desired flavor profile (default: similar taste)"`
}

func registerRecipeTools(server *mcp.Server, deps *Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_recipe",
		Description: "Generate a recipe based on available ingredients and preferences",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args GenerateRecipeArgs) (*mcp.CallToolResult, service.RecipeResult, error) {
		cuisine := defaultString(args.Cuisine, "any")
		dietary := defaultString(args.DietaryPreference, "none")
		style := defaultString(args.Style, "detailed")

		result := deps.Recipes.GenerateRecipe(ctx, args.Ingredients, cuisine, dietary, style, args.CookingTime)
		return nil, *result, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "suggest_ingredient_substitutions",
		Description: "Suggest substitutions for a specific ingredient",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SubstitutionArgs) (*mcp.CallToolResult, service.SubstitutionsResult, error) {
		reason := defaultString(args.Reason, "allergy")
		flavor := defaultString(args.FlavorProfile, "similar taste")

		result := deps.Recipes.SuggestSubstitutions(ctx, args.Ingredient, reason, flavor)
		return nil, *result, nil
	})
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
