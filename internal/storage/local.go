package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Local writes receipts under a directory served by the HTTP router.
type Local struct {
	dir        string
	publicPath string
	now        func() time.Time
}

func NewLocal(dir, publicPath string) (*Local, error) {
	if dir == "" {
		return nil, fmt.Errorf("receipt directory is required for local storage")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating receipt directory: %w", err)
	}
	return &Local{dir: dir, publicPath: "/" + strings.Trim(publicPath, "/"), now: time.Now}, nil
}

// Dir is the root the router serves at PublicPath.
func (l *Local) Dir() string { return l.dir }

func (l *Local) PublicPath() string { return l.publicPath }

func (l *Local) Save(_ context.Context, filename, _ string, data []byte) (string, error) {
	key := objectKey(l.now(), filename)
	full := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating receipt folder: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("writing receipt: %w", err)
	}
	return path.Join(l.publicPath, key), nil
}
