package service

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"rented/internal/models"

	"github.com/google/uuid"
)

// allowedImageTypes maps sniffed MIME types to the extension stored on disk.
// The uploaded filename is never trusted; content sniffing decides.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// StorageService persists uploaded listing and profile images under a
// directory on local disk. Stored names are random UUIDs so uploads can never
// collide or traverse outside the upload directory.
type StorageService struct {
	dir      string
	maxBytes int64
}

// NewStorageService returns a StorageService rooted at dir with the given
// upload cap in megabytes.
func NewStorageService(dir string, maxUploadMB int) *StorageService {
	return &StorageService{
		dir:      dir,
		maxBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// SaveImage validates and writes an uploaded image, returning the stored
// filename to persist on the model.
func (s *StorageService) SaveImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", models.NewValidationError("uploaded file is empty")
	}
	if int64(len(data)) > s.maxBytes {
		return "", models.NewValidationError(
			fmt.Sprintf("uploaded file exceeds the %d MB limit", s.maxBytes/(1024*1024)))
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", models.NewValidationError("uploaded file must be a JPEG, PNG, GIF or WebP image")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", models.NewInternalError(fmt.Errorf("creating upload dir: %w", err))
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", models.NewInternalError(fmt.Errorf("writing upload: %w", err))
	}
	return name, nil
}

// Open returns the on-disk path for a stored filename, rejecting names that
// escape the upload directory.
func (s *StorageService) Open(name string) (string, error) {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "\\") ||
		strings.Contains(name, "..") {
		return "", models.NewValidationError("invalid file name")
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("File", name)
		}
		return "", models.NewInternalError(err)
	}
	return path, nil
}

// Remove deletes a stored file, ignoring files that are already gone or the
// shared default image.
func (s *StorageService) Remove(name string) error {
	if name == "" || name == models.DefaultListingImage {
		return nil
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return models.NewValidationError("invalid file name")
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return models.NewInternalError(err)
	}
	return nil
}
