// Package imageinput resolves the heterogeneous image references accepted
// by the analysis tools: stored filenames, data URLs, plain URLs, bare
// base64 payloads and local file paths.
package imageinput

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// Kind identifies which form of image reference a string represents.
type Kind int

const (
	KindStoredFile Kind = iota
	KindDataURL
	KindURL
	KindBase64
	KindFilePath
)

func (k Kind) String() string {
	switch k {
	case KindStoredFile:
		return "stored_file"
	case KindDataURL:
		return "data_url"
	case KindURL:
		return "url"
	case KindBase64:
		return "base64"
	default:
		return "file_path"
	}
}

const dataURLPrefix = "data:image/"

// base64ProbeLen bounds how much of the input the base64 heuristic
// inspects; payloads are routinely megabytes long.
const base64ProbeLen = 100

// Classify decides which Kind a reference represents. The precedence is
// strict and first-match-wins: stored filename, then data URL, then plain
// URL, then base64 probe, with file path as the final fallback. isStored
// reports whether a filename is already present in the image store.
func Classify(ref string, isStored func(string) bool) Kind {
	if isStored != nil && isStored(ref) {
		return KindStoredFile
	}
	if IsDataURL(ref) {
		return KindDataURL
	}
	if IsURL(ref) {
		return KindURL
	}
	if looksLikeBase64(ref) {
		return KindBase64
	}
	return KindFilePath
}

// IsDataURL reports whether ref carries an inline base64 image payload.
func IsDataURL(ref string) bool {
	return strings.HasPrefix(ref, dataURLPrefix)
}

// IsURL reports whether ref parses as an absolute URL with both a scheme
// and a host.
func IsURL(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// looksLikeBase64 probes the first base64ProbeLen characters. This is a
// heuristic, not a proof: short plain words can coincidentally decode.
// It exists to prefer treating long opaque strings as base64 over
// treating them as file paths.
func looksLikeBase64(ref string) bool {
	if ref == "" {
		return false
	}
	probe := ref
	if len(probe) > base64ProbeLen {
		probe = probe[:base64ProbeLen]
	}
	for _, r := range probe {
		if !isBase64Char(r) {
			return false
		}
	}
	trimmed := strings.TrimRight(probe, "=")
	if rem := len(trimmed) % 4; rem != 0 {
		trimmed += strings.Repeat("=", 4-rem)
	}
	_, err := base64.StdEncoding.DecodeString(trimmed)
	return err == nil
}

func isBase64Char(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9') || r == '+' || r == '/' || r == '='
}
