package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/RaikyD/wb-shipping-service/internal/logger"
	"github.com/google/uuid"
)

const photoPrefix = "fotos"

var (
	ErrPhotoTooLarge   = errors.New("photo is too large")
	ErrUnsupportedType = errors.New("photo must be a JPEG or PNG image")
	ErrEmptyPhoto      = errors.New("photo is empty")
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// PhotoStore keeps uploaded evidence photos and hands out their public URL.
type PhotoStore interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
}

// DiskStore writes photos under Dir and serves them from BaseURL.
type DiskStore struct {
	Dir      string
	BaseURL  string
	MaxBytes int64
}

func NewDiskStore(dir, baseURL string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, photoPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/"), MaxBytes: maxBytes}, nil
}

// Upload sniffs the content type, stores the photo as fotos/<uuid>.<ext>
// and returns its public URL. Names are never reused.
func (s *DiskStore) Upload(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyPhoto
	}
	if int64(len(data)) > s.MaxBytes {
		return "", ErrPhotoTooLarge
	}
	ext, ok := extensions[http.DetectContentType(data)]
	if !ok {
		return "", ErrUnsupportedType
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := path.Join(photoPrefix, uuid.NewString()+ext)
	f, err := os.OpenFile(filepath.Join(s.Dir, filepath.FromSlash(name)), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create photo: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write photo: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close photo: %w", err)
	}

	url := s.PublicURL(name)
	logger.Debug("photo stored", "name", name, "bytes", len(data))
	return url, nil
}

func (s *DiskStore) PublicURL(name string) string {
	return s.BaseURL + "/" + name
}
