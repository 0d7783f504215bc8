package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultAudioExtension is used when the uploaded file name carries no extension
const DefaultAudioExtension = ".wav"

// Store persists uploaded audio and reads it back by the path it returned
type Store interface {
	// Save writes the whole reader under name and returns the stored path.
	// The content is fully written before Save returns.
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, int64, error)

	// Open reads back a file by the path Save returned
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Backend names the storage implementation ("local", "minio")
	Backend() string
}

// NewAudioFilename derives a storage name from a random id and the
// extension of the client supplied name. The client name never forms
// part of the path.
func NewAudioFilename(originalFilename string) string {
	ext := audioExtension(originalFilename)
	if ext == "" {
		ext = DefaultAudioExtension
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}

// audioExtension returns the suffix of the last path element: ".mp3" for
// "a/b/clip.mp3", "" for "notes", ".bashrc" style dotfiles or "name.".
func audioExtension(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	idx := strings.LastIndex(base, ".")
	if idx <= 0 || idx == len(base)-1 {
		return ""
	}
	return base[idx:]
}
