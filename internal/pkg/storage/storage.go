package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrNotFound = errors.New("file not found")

// FileStorage stores opaque blobs by key. Keys use forward slashes and never
// escape the storage root.
type FileStorage interface {
	// Upload writes the blob and returns the cleaned key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download returns ErrNotFound when the key does not exist
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete is a no-op for missing keys
	Delete(ctx context.Context, path string) error

	// GetURL generates a public URL
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	Exists(ctx context.Context, path string) (bool, error)

	// List returns every key starting with prefix, sorted
	List(ctx context.Context, prefix string) ([]string, error)
}

type UploadOptions struct {
	ContentType string
	MaxSize     int64
	AllowedExts []string
}

// AudioUploadOptions bounds audio attached to reports. Matches the transcription upload cap.
var AudioUploadOptions = UploadOptions{
	MaxSize:     25 << 20,
	AllowedExts: []string{".webm", ".mp4", ".m4a", ".wav", ".mp3", ".mpeg", ".ogg"},
}
