// Package tools registers the MCP tool and resource surface over the
// recipe and analysis services. Every tool returns a structured envelope
// with a success flag; failures are reported inside the envelope rather
// than as protocol-level errors.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/mealpilot/recipe-mcp/internal/service"
)

// Deps holds the services the tool handlers close over.
type Deps struct {
	Recipes  *service.RecipeService
	Analysis *service.AnalysisService
	Logger   zerolog.Logger
}

// Register adds every tool and resource to the MCP server.
func Register(server *mcp.Server, deps *Deps) {
	registerRecipeTools(server, deps)
	registerNutritionTools(server, deps)
	registerCombinedTools(server, deps)
	registerResources(server, deps)
	deps.Logger.Info().Msg("all tools registered")
}
