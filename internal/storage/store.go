// Package storage implements the local filesystem image store backing
// the nutrition tools. Images are keyed by filename within a single
// directory; there is no eviction and no cross-call locking.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a requested image is absent from the store.
var ErrNotFound = errors.New("image not found")

// imageExtensions is the allow-list applied by List and Clear.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
}

// SavedImage describes an image persisted by Save.
type SavedImage struct {
	Filename string `json:"filename"`
	Path     string `json:"file_path"`
	Size     int64  `json:"file_size"`
}

// ImageInfo describes a stored image as reported by List.
type ImageInfo struct {
	Filename string    `json:"filename"`
	Path     string    `json:"file_path"`
	Size     int64     `json:"file_size"`
	Modified time.Time `json:"modified"`
}

// Info summarizes the state of the store directory.
type Info struct {
	Dir        string `json:"storage_dir"`
	ImageCount int    `json:"image_count"`
	TotalSize  int64  `json:"total_size_bytes"`
	Exists     bool   `json:"exists"`
	Writable   bool   `json:"writable"`
}

// Store is a filesystem-backed image store rooted at a single directory.
type Store struct {
	dir    string
	logger zerolog.Logger
}

// New creates a Store rooted at dir, creating the directory (including
// parents) if it does not exist.
func New(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image storage directory %s: %w", dir, err)
	}
	logger.Info().Str("dir", dir).Msg("image storage directory ready")
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Exists reports whether an image with the given filename is present.
func (s *Store) Exists(filename string) bool {
	info, err := os.Stat(filepath.Join(s.dir, filename))
	return err == nil && !info.IsDir()
}

// Save writes data under filename. An empty filename generates a name of
// the form image_<8-hex>.jpg guaranteed distinct from anything currently
// on disk; an explicit filename silently overwrites any existing file.
func (s *Store) Save(data []byte, filename string) (*SavedImage, error) {
	if filename == "" {
		filename = s.generateFilename()
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to save image %s: %w", filename, err)
	}

	s.logger.Info().Str("path", path).Int("size", len(data)).Msg("saved image")

	return &SavedImage{
		Filename: filename,
		Path:     path,
		Size:     int64(len(data)),
	}, nil
}

// Read returns the contents of a stored image.
func (s *Store) Read(filename string) ([]byte, error) {
	path := filepath.Join(s.dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, fmt.Errorf("failed to read image %s: %w", filename, err)
	}
	return data, nil
}

// List returns every stored file whose extension is on the image
// allow-list. Order is filesystem-dependent.
func (s *Store) List() ([]ImageInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list image storage: %w", err)
	}

	images := make([]ImageInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		images = append(images, ImageInfo{
			Filename: entry.Name(),
			Path:     filepath.Join(s.dir, entry.Name()),
			Size:     fi.Size(),
			Modified: fi.ModTime(),
		})
	}
	return images, nil
}

// Delete removes a stored image and reports the freed size.
func (s *Store) Delete(filename string) (int64, error) {
	path := filepath.Join(s.dir, filename)
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return 0, fmt.Errorf("failed to stat image %s: %w", filename, err)
	}
	if err := os.Remove(path); err != nil {
		return 0, fmt.Errorf("failed to delete image %s: %w", filename, err)
	}

	s.logger.Info().Str("filename", filename).Msg("deleted image")
	return fi.Size(), nil
}

// Clear deletes every image on the allow-list and reports how many files
// and bytes were removed. An empty store clears successfully with zero
// counts.
func (s *Store) Clear() (int, int64, error) {
	images, err := s.List()
	if err != nil {
		return 0, 0, err
	}

	var deleted int
	var totalSize int64
	for _, img := range images {
		if err := os.Remove(img.Path); err != nil {
			return deleted, totalSize, fmt.Errorf("failed to delete image %s: %w", img.Filename, err)
		}
		deleted++
		totalSize += img.Size
	}

	s.logger.Info().Int("deleted", deleted).Msg("cleared image storage")
	return deleted, totalSize, nil
}

// Stats summarizes the store directory.
func (s *Store) Stats() (*Info, error) {
	images, err := s.List()
	if err != nil {
		return nil, err
	}

	var totalSize int64
	for _, img := range images {
		totalSize += img.Size
	}

	fi, err := os.Stat(s.dir)

	return &Info{
		Dir:        s.dir,
		ImageCount: len(images),
		TotalSize:  totalSize,
		Exists:     err == nil && fi.IsDir(),
		Writable:   s.writable(),
	}, nil
}

func (s *Store) writable() bool {
	probe := filepath.Join(s.dir, ".write_probe")
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	_ = f.Close()
	_ = os.Remove(probe)
	return true
}

// generateFilename rolls random names until one is free. Collisions are
// practically impossible but re-rolling keeps generated names distinct
// from whatever is on disk at call time.
func (s *Store) generateFilename() string {
	for {
		name := fmt.Sprintf("image_%s.jpg", strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
		if !s.Exists(name) {
			return name
		}
	}
}
