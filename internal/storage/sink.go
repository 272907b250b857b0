package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Sink persists uploaded files to a local directory. Save only returns once
// the file contents are durably on disk, so a catalog record written
// afterwards can never reference a half-written file.
type Sink struct {
	dir string
}

// NewSink creates the upload directory if needed and returns a sink for it.
func NewSink(dir string) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Sink{dir: dir}, nil
}

// Save writes the uploaded file under a unique name and returns its path
// relative to the process working directory.
func (s *Sink) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + "-" + filepath.Base(fh.Filename)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("sync file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close file: %w", err)
	}

	return path, nil
}
