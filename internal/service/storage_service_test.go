package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes is a minimal payload http.DetectContentType sniffs as image/png.
var pngBytes = []byte("\x89PNG\r\n\x1a\n" + "0000000000")

func TestStorageService_SaveImage(t *testing.T) {
	svc := NewStorageService(t.TempDir(), 1)

	name, err := svc.SaveImage(pngBytes)
	require.NoError(t, err)
	assert.True(t, filepath.Ext(name) == ".png")

	path, err := svc.Open(name)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestStorageService_SaveImage_Rejections(t *testing.T) {
	svc := NewStorageService(t.TempDir(), 1)

	_, err := svc.SaveImage(nil)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.SaveImage([]byte("just some text, not an image"))
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	big := make([]byte, 2*1024*1024)
	copy(big, pngBytes)
	_, err = svc.SaveImage(big)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestStorageService_Open_RejectsTraversal(t *testing.T) {
	svc := NewStorageService(t.TempDir(), 1)

	for _, name := range []string{"", "../etc/passwd", "a/b.png", `a\b.png`, ".."} {
		_, err := svc.Open(name)
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	}

	_, err := svc.Open("missing.png")
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestStorageService_Remove(t *testing.T) {
	dir := t.TempDir()
	svc := NewStorageService(dir, 1)

	name, err := svc.SaveImage(pngBytes)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// Idempotent, and the default image is never touched.
	require.NoError(t, svc.Remove(name))
	require.NoError(t, svc.Remove("default_listing.png"))
	require.NoError(t, svc.Remove(""))
}
