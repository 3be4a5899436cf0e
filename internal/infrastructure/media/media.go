package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/id"
)

// URLPrefix is the public path uploaded files are served under
const URLPrefix = "/uploads"

// Raster formats only. SVG is refused since it can carry script and the
// files are served from the API origin.
var allowedTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

var (
	// ErrTooLarge is returned for uploads above the configured limit
	ErrTooLarge = fmt.Errorf("%w: file is too large", errs.ErrInvalidInput)
	// ErrNotImage is returned for uploads whose content is not an image
	ErrNotImage = fmt.Errorf("%w: file is not an image", errs.ErrInvalidInput)
)

// Store saves uploaded images on local disk
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates the upload directory if needed
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Dir returns the directory files are written to
func (s *Store) Dir() string {
	return s.dir
}

// SaveImage validates and stores an uploaded image, returning its public URL
func (s *Store) SaveImage(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	return s.Save(f)
}

// Save reads an image from r and stores it under a unique name
func (s *Store) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return "", ErrNotImage
	}

	name := string(id.NewMediaID()) + mtype.Extension()
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return URLPrefix + "/" + name, nil
}

// Remove deletes a previously stored file by its public URL. Foreign URLs
// and names this store did not generate are ignored.
func (s *Store) Remove(url string) error {
	name, ok := strings.CutPrefix(url, URLPrefix+"/")
	if !ok || strings.ContainsAny(name, `/\`) {
		return nil
	}
	if !id.IsValidWithPrefix(strings.TrimSuffix(name, filepath.Ext(name)), id.MediaPrefix) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
