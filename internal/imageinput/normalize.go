package imageinput

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mealpilot/recipe-mcp/internal/storage"
)

// browserUserAgent is sent on downloads; some image hosts refuse requests
// without one.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const downloadTimeout = 30 * time.Second

// blockedURLPatterns marks URL substrings the server will never fetch:
// private attachment links that only the uploading user can access.
var blockedURLPatterns = []string{
	"github.com/user-attachments",
}

// Normalizer turns classified image references into raw bytes and
// persists them through the local image store.
type Normalizer struct {
	store  *storage.Store
	client *http.Client
	logger zerolog.Logger
}

// NewNormalizer creates a Normalizer backed by the given store.
func NewNormalizer(store *storage.Store, logger zerolog.Logger) *Normalizer {
	return &Normalizer{
		store:  store,
		client: &http.Client{Timeout: downloadTimeout},
		logger: logger,
	}
}

// Classify applies the standard precedence order, treating filenames
// already present in the store as stored files.
func (n *Normalizer) Classify(ref string) Kind {
	return Classify(ref, n.store.Exists)
}

// SaveFromRef resolves a data URL, plain URL or bare base64 reference to
// raw bytes and persists them in the store. Every successfully resolved
// input gains a durable filename as a side effect.
func (n *Normalizer) SaveFromRef(ctx context.Context, ref, filename string) (*storage.SavedImage, error) {
	bytes, err := n.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return n.store.Save(bytes, filename)
}

func (n *Normalizer) resolve(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case IsDataURL(ref):
		n.logger.Info().Msg("processing data URL")
		return DecodeDataURL(ref)
	case IsURL(ref):
		return n.Download(ctx, ref)
	default:
		n.logger.Info().Msg("processing base64 string")
		data, err := base64.StdEncoding.DecodeString(ref)
		if err != nil {
			return nil, &DecodeError{Reason: "invalid image input, must be URL, data URL, or base64 string", Err: err}
		}
		return data, nil
	}
}

// DecodeDataURL strips everything up to and including the first "base64,"
// marker and decodes the remainder.
func DecodeDataURL(dataURL string) ([]byte, error) {
	payload := dataURL
	if idx := strings.Index(dataURL, "base64,"); idx >= 0 {
		payload = dataURL[idx+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Reason: "malformed data URL payload", Err: err}
	}
	return data, nil
}

// Download performs an HTTP GET for the image at rawURL. Private
// attachment URLs are rejected before any network call is attempted.
func (n *Normalizer) Download(ctx context.Context, rawURL string) ([]byte, error) {
	for _, pattern := range blockedURLPatterns {
		if strings.Contains(rawURL, pattern) {
			return nil, &BlockedSourceError{
				URL: rawURL,
				Message: "Cannot access private GitHub attachment URLs directly. " +
					"Please ask the user to provide the local file path of the image " +
					"or try to extract the base64 data from the chat context.",
			}
		}
	}

	n.logger.Info().Str("url", rawURL).Msg("downloading image")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	// 403/404 on a source-hosting domain is almost always a private link,
	// which deserves a more actionable message than a generic failure.
	if (resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusNotFound) &&
		strings.Contains(rawURL, "github") {
		return nil, &BlockedSourceError{
			URL: rawURL,
			Message: fmt.Sprintf("Failed to download image (Status %d). "+
				"This looks like a private GitHub URL which the server cannot access. "+
				"Please use a public URL, local file path, or base64 data.", resp.StatusCode),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, &InvalidContentTypeError{URL: rawURL, ContentType: contentType}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	return data, nil
}
