package imageinput

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealpilot/recipe-mcp/internal/storage"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	store, err := storage.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return NewNormalizer(store, zerolog.Nop())
}

func TestDecodeDataURL(t *testing.T) {
	t.Run("valid data URL", func(t *testing.T) {
		payload := []byte("pretend this is a jpeg")
		dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)

		got, err := DecodeDataURL(dataURL)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := DecodeDataURL("data:image/jpeg;base64,!!!not-base64!!!")
		var decodeErr *DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})
}

func TestNormalizer_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("successful download", func(t *testing.T) {
		body := []byte("jpeg bytes from the wire")
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(body)
		}))
		defer srv.Close()

		n := newTestNormalizer(t)
		got, err := n.Download(ctx, srv.URL+"/food.jpg")
		require.NoError(t, err)
		assert.Equal(t, body, got)
	})

	t.Run("blocked private attachment URL skips the network", func(t *testing.T) {
		n := newTestNormalizer(t)
		_, err := n.Download(ctx, "https://github.com/user-attachments/assets/abc123")

		var blocked *BlockedSourceError
		require.ErrorAs(t, err, &blocked)
		assert.Contains(t, blocked.Message, "private GitHub attachment")
	})

	t.Run("non-2xx response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		n := newTestNormalizer(t)
		_, err := n.Download(ctx, srv.URL)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
	})

	t.Run("non-image content type", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		n := newTestNormalizer(t)
		_, err := n.Download(ctx, srv.URL)

		var typeErr *InvalidContentTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "text/html", typeErr.ContentType)
	})
}

func TestNormalizer_SaveFromRef(t *testing.T) {
	ctx := context.Background()

	t.Run("base64 input is persisted", func(t *testing.T) {
		n := newTestNormalizer(t)
		payload := []byte("raw image bytes")

		saved, err := n.SaveFromRef(ctx, base64.StdEncoding.EncodeToString(payload), "")
		require.NoError(t, err)
		assert.NotEmpty(t, saved.Filename)
		assert.Equal(t, int64(len(payload)), saved.Size)
	})

	t.Run("data URL input with explicit filename", func(t *testing.T) {
		n := newTestNormalizer(t)
		payload := []byte("png-ish bytes")
		ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

		saved, err := n.SaveFromRef(ctx, ref, "pasta.png")
		require.NoError(t, err)
		assert.Equal(t, "pasta.png", saved.Filename)
	})

	t.Run("url input downloads then persists", func(t *testing.T) {
		body := []byte("downloaded bytes")
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(body)
		}))
		defer srv.Close()

		n := newTestNormalizer(t)
		saved, err := n.SaveFromRef(ctx, srv.URL+"/salad.png", "")
		require.NoError(t, err)
		assert.Equal(t, int64(len(body)), saved.Size)
	})

	t.Run("invalid input fails with decode error", func(t *testing.T) {
		n := newTestNormalizer(t)
		_, err := n.SaveFromRef(ctx, "definitely not an image ref!!", "")

		var decodeErr *DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})
}
