package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Register decoders for the supported raster formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

// ErrNotImage is returned when an upload does not decode as a supported
// raster image (JPEG, PNG or GIF).
var ErrNotImage = errors.New("payload is not a supported image")

const recipeImageDir = "recipe-images"

// ImageStore persists uploaded recipe images under a media root. Files are
// named by a generated UUID, never by the client-supplied filename, so
// client input cannot collide with or traverse outside the store.
type ImageStore struct {
	root string
}

// NewImageStore creates the recipe-images area under root if needed.
func NewImageStore(root string) (*ImageStore, error) {
	dir := filepath.Join(root, recipeImageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}
	return &ImageStore{root: root}, nil
}

// SaveRecipeImage validates that data decodes as an image and writes it under
// the recipe-images area. It returns the stored path relative to the media
// root. Nothing is written when validation fails.
func (s *ImageStore) SaveRecipeImage(data []byte, originalName string) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if ext == "" {
		// Fall back to the detected format when the client sent no extension.
		ext = "." + format
	}

	name := uuid.New().String() + ext
	rel := filepath.Join(recipeImageDir, name)
	if err := os.WriteFile(filepath.Join(s.root, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", rel, err)
	}
	return filepath.ToSlash(rel), nil
}
