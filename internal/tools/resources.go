package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverCapabilities is served by the config://server resource.
var serverCapabilities = map[string]any{
	"name":    "Enhanced Recipe Server",
	"version": "1.0.0",
	"capabilities": map[string]bool{
		"recipe_generation":    true,
		"food_recognition":     true,
		"nutrition_analysis":   true,
		"image_analysis":       true,
		"inline_image_support": true,
		"url_image_support":    true,
		"image_storage":        true,
	},
	"supported_cuisines": []string{
		"any", "italian", "mexican", "chinese", "indian",
		"french", "thai", "japanese", "american", "mediterranean",
	},
	"supported_diets": []string{
		"none", "vegetarian", "vegan", "gluten_free",
		"dairy_free", "keto", "paleo",
	},
}

func registerResources(server *mcp.Server, deps *Deps) {
	store := deps.Analysis.Store()

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "stored-image",
		URITemplate: "image://{filename}",
		Description: "Binary contents of a stored image",
		MIMEType:    "image/jpeg",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		filename := strings.TrimPrefix(req.Params.URI, "image://")
		data, err := store.Read(filename)
		if err != nil {
			return nil, fmt.Errorf("image not found: %s", filename)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, MIMEType: "image/jpeg", Blob: data},
			},
		}, nil
	})

	server.AddResource(&mcp.Resource{
		Name:        "stored-images",
		URI:         "images://list",
		Description: "JSON listing of all stored images",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		listing, err := json.MarshalIndent(listImages(store), "", "  ")
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, MIMEType: "application/json", Text: string(listing)},
			},
		}, nil
	})

	server.AddResource(&mcp.Resource{
		Name:        "server-config",
		URI:         "config://server",
		Description: "Server capabilities and supported options",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		cfg, err := json.MarshalIndent(serverCapabilities, "", "  ")
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, MIMEType: "application/json", Text: string(cfg)},
			},
		}, nil
	})
}
