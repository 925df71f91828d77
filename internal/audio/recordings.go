package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// RecordingStore saves the audio a child records while reading aloud.
// Files are kept under the static directory so the parent app can play
// them back from the history view.
type RecordingStore struct {
	dir     string
	maxSize int64
}

// NewRecordingStore creates a recording store. maxSize caps the size of
// a single upload in bytes.
func NewRecordingStore(dir string, maxSize int64) (*RecordingStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create recordings directory: %w", err)
	}
	return &RecordingStore{dir: dir, maxSize: maxSize}, nil
}

// Save writes an uploaded recording and returns the filename under the
// recordings directory. The extension is taken from the upload, limited
// to the formats the tablets produce.
func (s *RecordingStore) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".m4a", ".mp3", ".wav":
	default:
		ext = ".m4a"
	}

	filename := fmt.Sprintf("reading_%s%s", uuid.New().String(), ext)
	path := filepath.Join(s.dir, filename)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create recording file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write recording: %w", err)
	}
	if written > s.maxSize {
		os.Remove(path)
		return "", fmt.Errorf("recording exceeds maximum size of %d bytes", s.maxSize)
	}

	return filename, nil
}

// Delete removes a stored recording
func (s *RecordingStore) Delete(filename string) error {
	// Refuse anything that could escape the recordings directory
	if filename != filepath.Base(filename) {
		return fmt.Errorf("invalid recording filename")
	}

	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}
