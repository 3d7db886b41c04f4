// Package service composes the image store, input normalizer, LogMeal
// client and OpenAI client into the operations exposed as MCP tools.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mealpilot/recipe-mcp/internal/imageinput"
	"github.com/mealpilot/recipe-mcp/internal/logmeal"
	"github.com/mealpilot/recipe-mcp/internal/storage"
)

// AnalysisService runs the classify → normalize → recognize → reduce →
// enrich pipeline over any accepted image reference.
type AnalysisService struct {
	store      *storage.Store
	normalizer *imageinput.Normalizer
	logmeal    *logmeal.Client
	logger     zerolog.Logger
}

// NewAnalysisService wires the pipeline components together.
func NewAnalysisService(store *storage.Store, normalizer *imageinput.Normalizer, client *logmeal.Client, logger zerolog.Logger) *AnalysisService {
	return &AnalysisService{
		store:      store,
		normalizer: normalizer,
		logmeal:    client,
		logger:     logger,
	}
}

// Store exposes the underlying image store for the storage tools.
func (s *AnalysisService) Store() *storage.Store {
	return s.store
}

// SaveFromRef persists a URL, data-URL or base64 reference in the store.
func (s *AnalysisService) SaveFromRef(ctx context.Context, ref, filename string) (*storage.SavedImage, error) {
	return s.normalizer.SaveFromRef(ctx, ref, filename)
}

// AnalyzeStored analyzes an image already present in the store and
// attaches store provenance to the result.
func (s *AnalysisService) AnalyzeStored(ctx context.Context, filename string) *logmeal.AnalysisResult {
	data, err := s.store.Read(filename)
	if err != nil {
		return &logmeal.AnalysisResult{Success: false, Error: err.Error()}
	}

	s.logger.Info().Str("filename", filename).Msg("analyzing saved image")

	result := s.logmeal.AnalyzeImage(ctx, data)
	if result.Success {
		result.ImageInfo = &logmeal.ImageProvenance{
			Filename:   filename,
			FilePath:   filepath.Join(s.store.Dir(), filename),
			FileSize:   int64(len(data)),
			StorageDir: s.store.Dir(),
		}
	}
	return result
}

// AnalyzeFromRef saves a URL, data-URL or base64 reference to the store
// and analyzes the stored copy, so the input gains a durable filename.
func (s *AnalysisService) AnalyzeFromRef(ctx context.Context, ref string) *logmeal.AnalysisResult {
	if ref == "" {
		return &logmeal.AnalysisResult{Success: false, Error: "Image URL or data is required"}
	}

	saved, err := s.normalizer.SaveFromRef(ctx, ref, "")
	if err != nil {
		return &logmeal.AnalysisResult{Success: false, Error: err.Error()}
	}
	return s.AnalyzeStored(ctx, saved.Filename)
}

// AnalyzeFromPath analyzes a local file directly, bypassing the store.
func (s *AnalysisService) AnalyzeFromPath(ctx context.Context, path string) *logmeal.AnalysisResult {
	s.logger.Info().Str("path", path).Msg("analyzing image from file path")

	data, err := os.ReadFile(path)
	if err != nil {
		return &logmeal.AnalysisResult{Success: false, Error: fmt.Sprintf("Analysis failed: %v", err)}
	}

	result := s.logmeal.AnalyzeImage(ctx, data)
	if result.Success {
		result.PathInfo = &logmeal.PathProvenance{
			FilePath: path,
			FileSize: int64(len(data)),
		}
	}
	return result
}

// Analyze is the universal entry point: it classifies the reference and
// dispatches to the matching pipeline.
func (s *AnalysisService) Analyze(ctx context.Context, ref string) *logmeal.AnalysisResult {
	kind := s.normalizer.Classify(ref)
	s.logger.Info().Stringer("kind", kind).Msg("classified image input")

	switch kind {
	case imageinput.KindStoredFile:
		return s.AnalyzeStored(ctx, ref)
	case imageinput.KindDataURL, imageinput.KindURL, imageinput.KindBase64:
		return s.AnalyzeFromRef(ctx, ref)
	default:
		return s.AnalyzeFromPath(ctx, ref)
	}
}

// GetNutrition looks up nutrition information for a list of food names.
func (s *AnalysisService) GetNutrition(ctx context.Context, foods []string) *logmeal.NutritionResult {
	return s.logmeal.GetNutritionInfo(ctx, foods)
}
