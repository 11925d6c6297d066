package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	// ErrNotAnImage is returned when an upload is not a recognised image type.
	ErrNotAnImage = errors.New("upload is not an image")
	// ErrTooLarge is returned when an upload exceeds the configured size.
	ErrTooLarge = errors.New("upload is too large")
)

// imageDir is the media sub-directory post images are stored under.
const imageDir = "posts"

// SaveImage stores an uploaded image below mediaRoot/posts and returns its
// path relative to mediaRoot using forward slashes, e.g. "posts/<uuid>.png".
func SaveImage(fh *multipart.FileHeader, mediaRoot string, maxBytes int64) (string, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return "", ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect upload type: %w", err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", ErrNotAnImage
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	dir := filepath.Join(mediaRoot, imageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}

	name := uuid.NewString() + mt.Extension()
	dst := filepath.Join(dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer out.Close()

	limit := maxBytes
	if limit <= 0 {
		limit = 1 << 62
	}
	written, err := io.Copy(out, io.LimitReader(src, limit+1))
	if err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("write media file: %w", err)
	}
	if written > limit {
		_ = os.Remove(dst)
		return "", ErrTooLarge
	}

	return path.Join(imageDir, name), nil
}
