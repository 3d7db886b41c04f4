package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mealpilot/recipe-mcp/internal/logmeal"
	"github.com/mealpilot/recipe-mcp/internal/storage"
)

// maxNutritionIngredients caps how many ingredients a single nutrition
// estimate sends to the backend.
const maxNutritionIngredients = 10

// SaveImageFromURLArgs is the input for the save_image_from_url tool.
type SaveImageFromURLArgs struct {
	ImageURL string `json:"image_url" jsonschema:"image URL, data URL, or base64 string to save"`
	Filename string `json:"filename,omitempty" jsonschema:"optional filename; generated when omitted"`
}

// SaveImageFromBytesArgs is the input for the save_image_from_bytes and
// analyze_uploaded_image tools.
type SaveImageFromBytesArgs struct {
	ImageBytes []byte `json:"image_bytes" jsonschema:"raw image bytes, base64-encoded"`
	Filename   string `json:"filename,omitempty" jsonschema:"optional filename; generated when omitted"`
}

// SaveImageResult reports where an image was persisted.
type SaveImageResult struct {
	Success    bool   `json:"success"`
	Filename   string `json:"filename,omitempty"`
	FilePath   string `json:"file_path,omitempty"`
	FileSize   int64  `json:"file_size,omitempty"`
	StorageDir string `json:"storage_dir,omitempty"`
	Error      string `json:"error,omitempty"`
}

// FilenameArgs addresses a stored image by name.
type FilenameArgs struct {
	Filename string `json:"filename" jsonschema:"name of a stored image"`
}

// ImageURLArgs is the input for analyze_food_image_url.
type ImageURLArgs struct {
	ImageURL string `json:"image_url" jsonschema:"public image URL or data URL"`
}

// ImageInputArgs is the input for the universal analyze_food_image tool.
type ImageInputArgs struct {
	ImageInput string `json:"image_input" jsonschema:"image URL, data URL, base64 string, file path, or stored filename"`
}

// ImagePathArgs is the input for analyze_food_image_path.
type ImagePathArgs struct {
	ImagePath string `json:"image_path" jsonschema:"local file path of the image"`
}

// ListImagesResult is the output of list_saved_images.
type ListImagesResult struct {
	Success    bool                `json:"success"`
	Images     []storage.ImageInfo `json:"images"`
	Count      int                 `json:"count"`
	StorageDir string              `json:"storage_dir,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// DeleteImageResult is the output of delete_saved_image.
type DeleteImageResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Filename string `json:"filename,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ClearStorageResult is the output of clear_image_storage.
type ClearStorageResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	DeletedCount int    `json:"deleted_count"`
	TotalSize    int64  `json:"total_size"`
	Error        string `json:"error,omitempty"`
}

// StorageInfoResult is the output of get_image_storage_info.
type StorageInfoResult struct {
	Success        bool    `json:"success"`
	StorageDir     string  `json:"storage_dir,omitempty"`
	ImageCount     int     `json:"image_count"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	TotalSizeMB    float64 `json:"total_size_mb"`
	Exists         bool    `json:"exists"`
	Writable       bool    `json:"writable"`
	Error          string  `json:"error,omitempty"`
}

// FoodItemsArgs is the input for get_food_nutrition.
type FoodItemsArgs struct {
	FoodItems []string `json:"food_items" jsonschema:"names of the food items to look up"`
}

// EstimateNutritionArgs is the input for estimate_recipe_nutrition.
type EstimateNutritionArgs struct {
	Ingredients []string `json:"ingredients" jsonschema:"recipe ingredients"`
	Servings    int      `json:"servings,omitempty" jsonschema:"number of servings (default: 1)"`
}

// EstimateNutritionResult is the output of estimate_recipe_nutrition.
type EstimateNutritionResult struct {
	Success             bool            `json:"success"`
	IngredientsAnalyzed []string        `json:"ingredients_analyzed,omitempty"`
	TotalIngredients    int             `json:"total_ingredients,omitempty"`
	Servings            int             `json:"servings,omitempty"`
	NutritionSummary    json.RawMessage `json:"nutrition_summary,omitempty"`
	Note                string          `json:"note,omitempty"`
	Error               string          `json:"error,omitempty"`
}

func registerNutritionTools(server *mcp.Server, deps *Deps) {
	store := deps.Analysis.Store()

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_image_from_url",
		Description: "Save an image from a URL, data URL or base64 string to local storage",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SaveImageFromURLArgs) (*mcp.CallToolResult, SaveImageResult, error) {
		saved, err := deps.Analysis.SaveFromRef(ctx, args.ImageURL, args.Filename)
		if err != nil {
			return nil, SaveImageResult{Success: false, Error: err.Error()}, nil
		}
		return nil, *savedResult(saved, store.Dir()), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_image_from_bytes",
		Description: "Save raw image bytes to local storage",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SaveImageFromBytesArgs) (*mcp.CallToolResult, SaveImageResult, error) {
		saved, err := store.Save(args.ImageBytes, args.Filename)
		if err != nil {
			return nil, SaveImageResult{Success: false, Error: err.Error()}, nil
		}
		return nil, *savedResult(saved, store.Dir()), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_saved_images",
		Description: "List all images saved in local storage",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, ListImagesResult, error) {
		return nil, *listImages(store), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_saved_image",
		Description: "Analyze a food image from local storage",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FilenameArgs) (*mcp.CallToolResult, logmeal.AnalysisResult, error) {
		return nil, *deps.Analysis.AnalyzeStored(ctx, args.Filename), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_food_image_url",
		Description: "Analyze a food image from a URL or data URL; the image is saved to storage first",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ImageURLArgs) (*mcp.CallToolResult, logmeal.AnalysisResult, error) {
		return nil, *deps.Analysis.AnalyzeFromRef(ctx, args.ImageURL), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_food_image",
		Description: "Universal food image analyzer accepting URLs, data URLs, base64 strings, file paths, and stored filenames",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ImageInputArgs) (*mcp.CallToolResult, logmeal.AnalysisResult, error) {
		return nil, *deps.Analysis.Analyze(ctx, args.ImageInput), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_uploaded_image",
		Description: "Save raw uploaded image bytes to local storage and analyze them",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SaveImageFromBytesArgs) (*mcp.CallToolResult, logmeal.AnalysisResult, error) {
		return nil, *analyzeUpload(ctx, deps, args.ImageBytes, args.Filename), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_food_image_path",
		Description: "Analyze a food image from a local file path",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ImagePathArgs) (*mcp.CallToolResult, logmeal.AnalysisResult, error) {
		return nil, *deps.Analysis.AnalyzeFromPath(ctx, args.ImagePath), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_saved_image",
		Description: "Delete an image from local storage",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FilenameArgs) (*mcp.CallToolResult, DeleteImageResult, error) {
		size, err := store.Delete(args.Filename)
		if err != nil {
			return nil, DeleteImageResult{Success: false, Error: err.Error()}, nil
		}
		return nil, DeleteImageResult{
			Success:  true,
			Message:  fmt.Sprintf("Deleted %s (%d bytes)", args.Filename, size),
			Filename: args.Filename,
			FileSize: size,
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_image_storage",
		Description: "Delete every image from local storage",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, ClearStorageResult, error) {
		count, size, err := store.Clear()
		if err != nil {
			return nil, ClearStorageResult{Success: false, Error: err.Error()}, nil
		}
		return nil, ClearStorageResult{
			Success:      true,
			Message:      fmt.Sprintf("Deleted %d images (%d bytes total)", count, size),
			DeletedCount: count,
			TotalSize:    size,
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_image_storage_info",
		Description: "Get information about the local image storage directory",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, StorageInfoResult, error) {
		info, err := store.Stats()
		if err != nil {
			return nil, StorageInfoResult{Success: false, Error: err.Error()}, nil
		}
		return nil, StorageInfoResult{
			Success:        true,
			StorageDir:     info.Dir,
			ImageCount:     info.ImageCount,
			TotalSizeBytes: info.TotalSize,
			TotalSizeMB:    float64(info.TotalSize) / (1024 * 1024),
			Exists:         info.Exists,
			Writable:       info.Writable,
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_food_nutrition",
		Description: "Get nutrition information for specific food items",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FoodItemsArgs) (*mcp.CallToolResult, logmeal.NutritionResult, error) {
		if len(args.FoodItems) == 0 {
			return nil, logmeal.NutritionResult{Success: false, Error: "At least one food item is required"}, nil
		}
		return nil, *deps.Analysis.GetNutrition(ctx, args.FoodItems), nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "estimate_recipe_nutrition",
		Description: "Estimate nutrition information for a recipe from its ingredients",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args EstimateNutritionArgs) (*mcp.CallToolResult, EstimateNutritionResult, error) {
		if len(args.Ingredients) == 0 {
			return nil, EstimateNutritionResult{Success: false, Error: "At least one ingredient is required"}, nil
		}

		servings := args.Servings
		if servings <= 0 {
			servings = 1
		}

		main := args.Ingredients
		if len(main) > maxNutritionIngredients {
			main = main[:maxNutritionIngredients]
		}

		nutrition := deps.Analysis.GetNutrition(ctx, main)
		if !nutrition.Success {
			return nil, EstimateNutritionResult{Success: false, Error: nutrition.Error}, nil
		}

		return nil, EstimateNutritionResult{
			Success:             true,
			IngredientsAnalyzed: main,
			TotalIngredients:    len(args.Ingredients),
			Servings:            servings,
			NutritionSummary:    nutrition.NutritionInfo,
			Note:                fmt.Sprintf("Analyzed %d of %d ingredients", len(main), len(args.Ingredients)),
		}, nil
	})
}

// analyzeUpload persists raw bytes in the store and analyzes the stored
// copy, so chat uploads gain a durable filename like every other input.
func analyzeUpload(ctx context.Context, deps *Deps, data []byte, filename string) *logmeal.AnalysisResult {
	saved, err := deps.Analysis.Store().Save(data, filename)
	if err != nil {
		return &logmeal.AnalysisResult{Success: false, Error: err.Error()}
	}
	return deps.Analysis.AnalyzeStored(ctx, saved.Filename)
}

func savedResult(saved *storage.SavedImage, storageDir string) *SaveImageResult {
	return &SaveImageResult{
		Success:    true,
		Filename:   saved.Filename,
		FilePath:   saved.Path,
		FileSize:   saved.Size,
		StorageDir: storageDir,
	}
}

func listImages(store *storage.Store) *ListImagesResult {
	images, err := store.List()
	if err != nil {
		return &ListImagesResult{Success: false, Error: err.Error()}
	}
	return &ListImagesResult{
		Success:    true,
		Images:     images,
		Count:      len(images),
		StorageDir: store.Dir(),
	}
}
