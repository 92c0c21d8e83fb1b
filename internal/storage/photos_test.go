package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestDiskStoreUpload(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "http://host/photos/", 1024)
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://host/photos/fotos/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := strings.TrimPrefix(url, "http://host/photos/")
	got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, got)
}

func TestDiskStoreRejects(t *testing.T) {
	s, err := NewDiskStore(t.TempDir(), "http://host/photos", 16)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Upload(ctx, bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrEmptyPhoto)

	_, err = s.Upload(ctx, strings.NewReader("plain text, not an image"))
	assert.ErrorIs(t, err, ErrPhotoTooLarge)

	_, err = s.Upload(ctx, strings.NewReader("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
