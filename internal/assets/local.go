package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalSink writes images into a directory served at baseURL.
type LocalSink struct {
	dir     string
	baseURL string
}

// NewLocalSink creates a sink for dir. The directory is created on first
// write if it does not exist.
func NewLocalSink(dir, baseURL string) *LocalSink {
	return &LocalSink{dir: dir, baseURL: strings.TrimRight(baseURL, "/") + "/"}
}

// Dir returns the directory images are written to.
func (s *LocalSink) Dir() string {
	return s.dir
}

// Put writes data to dir/name and returns baseURL + name.
func (s *LocalSink) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid image name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return s.baseURL + name, nil
}
