package logmeal

import "encoding/json"

// FoodFamily is one category label on a candidate's family chain. The
// backend returns them ordered general to specific.
type FoodFamily struct {
	ID          json.Number `json:"id,omitempty"`
	Name        string      `json:"name"`
	Probability float64     `json:"prob,omitempty"`
}

// Candidate is one confidence-scored recognition guess. Candidates form a
// tree: a candidate may carry more specific nested guesses in Subclasses.
type Candidate struct {
	Name        string       `json:"name"`
	ID          json.Number  `json:"id,omitempty"`
	Probability float64      `json:"prob"`
	FoodFamily  []FoodFamily `json:"foodFamily,omitempty"`
	Subclasses  []Candidate  `json:"subclasses,omitempty"`
}

// SegmentGroup is one segmented region of the image with its candidate
// list.
type SegmentGroup struct {
	RecognitionResults []Candidate `json:"recognition_results"`
}

// RecognitionResult is the normalized outcome of a segmentation call.
type RecognitionResult struct {
	Success         bool           `json:"success"`
	Groups          []SegmentGroup `json:"segmentation_results,omitempty"`
	ImageAnalysisID json.Number    `json:"image_analysis_id,omitempty"`
	Error           string         `json:"error,omitempty"`
}

// IngredientsResult is the outcome of a recipe-ingredients lookup.
type IngredientsResult struct {
	Success     bool            `json:"success"`
	RecipeID    string          `json:"recipe_id,omitempty"`
	Ingredients json.RawMessage `json:"ingredients,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// NutritionResult is the outcome of a nutritional-info lookup for a set
// of food names.
type NutritionResult struct {
	Success       bool            `json:"success"`
	NutritionInfo json.RawMessage `json:"nutrition_info,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// Ingredient lookup status values reported on AnalysisResult.
const (
	IngredientsOK          = "ok"
	IngredientsSkipped     = "skipped"
	IngredientsUnavailable = "unavailable"
)

// RecognizedDish is the best-confidence candidate reduced from the
// recognition tree.
type RecognizedDish struct {
	Name       string       `json:"name"`
	ID         json.Number  `json:"id,omitempty"`
	Confidence float64      `json:"confidence"`
	FoodFamily []FoodFamily `json:"food_family,omitempty"`
}

// ImageProvenance records where analyzed bytes came from when the entry
// path went through the store.
type ImageProvenance struct {
	Filename   string `json:"filename"`
	FilePath   string `json:"file_path"`
	FileSize   int64  `json:"file_size"`
	StorageDir string `json:"storage_dir"`
}

// PathProvenance records where analyzed bytes came from when the entry
// path read a local file directly.
type PathProvenance struct {
	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size"`
}

// AnalysisResult is the final envelope produced by the full
// recognize-reduce-enrich pipeline. IngredientsStatus distinguishes a
// best-effort enrichment failure from full success.
type AnalysisResult struct {
	Success           bool             `json:"success"`
	Error             string           `json:"error,omitempty"`
	Message           string           `json:"message,omitempty"`
	RecognizedDish    *RecognizedDish  `json:"recognized_dish"`
	IngredientsInfo   json.RawMessage  `json:"ingredients_info,omitempty"`
	IngredientsStatus string           `json:"ingredients_status,omitempty"`
	ImageAnalysisID   json.Number      `json:"image_analysis_id,omitempty"`
	ImageInfo         *ImageProvenance `json:"image_info,omitempty"`
	PathInfo          *PathProvenance  `json:"path_info,omitempty"`
}
