package service

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealpilot/recipe-mcp/internal/imageinput"
	"github.com/mealpilot/recipe-mcp/internal/logmeal"
	"github.com/mealpilot/recipe-mcp/internal/storage"
)

const recognitionBody = `{
	"image_analysis_id": 5,
	"segmentation_results": [
		{"recognition_results": [
			{"name": "pizza", "id": 1, "prob": 0.6,
			 "subclasses": [{"name": "margherita pizza", "id": 2, "prob": 0.9}]}
		]}
	]
}`

func newLogMealBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/image/segmentation/complete":
			_, _ = w.Write([]byte(recognitionBody))
		case "/nutrition/recipe/ingredients":
			_, _ = w.Write([]byte(`{"ingredients": ["dough", "tomato"]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAnalysisService(t *testing.T, backendURL string) *AnalysisService {
	t.Helper()
	store, err := storage.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	normalizer := imageinput.NewNormalizer(store, zerolog.Nop())
	client := logmeal.NewClient("test-key", backendURL, zerolog.Nop())
	return NewAnalysisService(store, normalizer, client, zerolog.Nop())
}

func TestAnalysisService_AnalyzeStored(t *testing.T) {
	ctx := context.Background()
	backend := newLogMealBackend(t)
	svc := newTestAnalysisService(t, backend.URL)

	t.Run("stored image gains image provenance", func(t *testing.T) {
		_, err := svc.Store().Save([]byte("jpeg bytes"), "lunch.jpg")
		require.NoError(t, err)

		result := svc.AnalyzeStored(ctx, "lunch.jpg")
		require.True(t, result.Success)
		require.NotNil(t, result.RecognizedDish)
		assert.Equal(t, "margherita pizza", result.RecognizedDish.Name)
		require.NotNil(t, result.ImageInfo)
		assert.Equal(t, "lunch.jpg", result.ImageInfo.Filename)
		assert.Equal(t, svc.Store().Dir(), result.ImageInfo.StorageDir)
	})

	t.Run("missing stored image", func(t *testing.T) {
		result := svc.AnalyzeStored(ctx, "no-such.jpg")
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "not found")
	})
}

func TestAnalysisService_AnalyzeFromRef(t *testing.T) {
	ctx := context.Background()
	backend := newLogMealBackend(t)
	svc := newTestAnalysisService(t, backend.URL)

	t.Run("base64 input is saved then analyzed", func(t *testing.T) {
		ref := base64.StdEncoding.EncodeToString([]byte("raw image bytes"))

		result := svc.AnalyzeFromRef(ctx, ref)
		require.True(t, result.Success)
		require.NotNil(t, result.ImageInfo)

		// The input gained a durable filename as a side effect.
		assert.True(t, svc.Store().Exists(result.ImageInfo.Filename))
	})

	t.Run("empty reference", func(t *testing.T) {
		result := svc.AnalyzeFromRef(ctx, "")
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "required")
	})

	t.Run("blocked private URL", func(t *testing.T) {
		result := svc.AnalyzeFromRef(ctx, "https://github.com/user-attachments/assets/xyz")
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "private GitHub attachment")
	})
}

func TestAnalysisService_AnalyzeFromPath(t *testing.T) {
	ctx := context.Background()
	backend := newLogMealBackend(t)
	svc := newTestAnalysisService(t, backend.URL)

	t.Run("local file gains path provenance", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "meal.jpg")
		require.NoError(t, os.WriteFile(path, []byte("jpeg on disk"), 0o644))

		result := svc.AnalyzeFromPath(ctx, path)
		require.True(t, result.Success)
		require.NotNil(t, result.PathInfo)
		assert.Equal(t, path, result.PathInfo.FilePath)
		assert.Equal(t, int64(len("jpeg on disk")), result.PathInfo.FileSize)
	})

	t.Run("missing local file", func(t *testing.T) {
		result := svc.AnalyzeFromPath(ctx, "/nonexistent/dir/meal.jpg")
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "Analysis failed")
	})
}

func TestAnalysisService_Analyze(t *testing.T) {
	ctx := context.Background()
	backend := newLogMealBackend(t)
	svc := newTestAnalysisService(t, backend.URL)

	t.Run("stored filename wins over other interpretations", func(t *testing.T) {
		_, err := svc.Store().Save([]byte("stored bytes"), "dinner.jpg")
		require.NoError(t, err)

		result := svc.Analyze(ctx, "dinner.jpg")
		require.True(t, result.Success)
		require.NotNil(t, result.ImageInfo)
		assert.Equal(t, "dinner.jpg", result.ImageInfo.Filename)
	})

	t.Run("unknown name falls through to file path", func(t *testing.T) {
		result := svc.Analyze(ctx, "nonexistent.jpg")
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "Analysis failed")
	})

	t.Run("base64 reference routes through storage", func(t *testing.T) {
		ref := base64.StdEncoding.EncodeToString([]byte("more image bytes"))
		result := svc.Analyze(ctx, ref)
		require.True(t, result.Success)
		assert.NotNil(t, result.ImageInfo)
	})
}
