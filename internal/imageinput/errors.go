package imageinput

import "fmt"

// DecodeError indicates malformed base64 or data-URL input.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to decode image data: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to decode image data: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// BlockedSourceError indicates a URL the server refuses to fetch, such as
// private attachment links it cannot access.
type BlockedSourceError struct {
	URL     string
	Message string
}

func (e *BlockedSourceError) Error() string { return e.Message }

// FetchError indicates a transport failure or non-2xx response while
// downloading an image.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to download image from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to download image from %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// InvalidContentTypeError indicates a downloaded resource that is not an
// image.
type InvalidContentTypeError struct {
	URL         string
	ContentType string
}

func (e *InvalidContentTypeError) Error() string {
	return fmt.Sprintf("URL does not point to an image. Content-Type: %s", e.ContentType)
}
