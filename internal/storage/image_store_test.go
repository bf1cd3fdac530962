package storage_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recipebox/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)))
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImageStore_SaveRecipeImage(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewImageStore(root)
	require.NoError(t, err)

	rel, err := store.SaveRecipeImage(pngBytes(t), "My Photo.PNG")
	require.NoError(t, err)

	// Stored under the recipe-images area with a generated name, keeping
	// only the extension from the client filename.
	assert.True(t, strings.HasPrefix(rel, "recipe-images/"), rel)
	assert.True(t, strings.HasSuffix(rel, ".png"), rel)
	assert.NotContains(t, rel, "My Photo")

	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	assert.Equal(t, pngBytes(t), data)
}

func TestImageStore_SaveRecipeImage_UniqueNames(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewImageStore(root)
	require.NoError(t, err)

	first, err := store.SaveRecipeImage(pngBytes(t), "a.png")
	require.NoError(t, err)
	second, err := store.SaveRecipeImage(pngBytes(t), "a.png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestImageStore_SaveRecipeImage_MissingExtension(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewImageStore(root)
	require.NoError(t, err)

	rel, err := store.SaveRecipeImage(pngBytes(t), "upload")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(rel, ".png"), rel)
}

func TestImageStore_SaveRecipeImage_RejectsNonImage(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewImageStore(root)
	require.NoError(t, err)

	rel, err := store.SaveRecipeImage([]byte("definitely not an image"), "note.txt")
	assert.ErrorIs(t, err, storage.ErrNotImage)
	assert.Empty(t, rel)

	// Nothing may be written on failure.
	entries, readErr := os.ReadDir(filepath.Join(root, "recipe-images"))
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
