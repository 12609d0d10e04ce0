// Package storage keeps the original images of scanned receipts.
package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"rp_admin_backend/internal/config"

	"github.com/google/uuid"
)

// ReceiptStore saves an uploaded receipt and returns a URL it can be fetched from.
type ReceiptStore interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// New builds the store selected by cfg.Backend. An empty backend disables
// storage and returns a nil store.
func New(ctx context.Context, cfg config.ReceiptStorageConfig) (ReceiptStore, error) {
	switch cfg.Backend {
	case "", "none":
		return nil, nil
	case "local":
		return NewLocal(cfg.Dir, cfg.PublicPath)
	case "gcs":
		return NewGCS(ctx, cfg.Bucket, cfg.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown receipt storage backend %q", cfg.Backend)
	}
}

// objectKey returns YYYY/MM/<uuid><ext> for an upload.
func objectKey(now time.Time, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 8 {
		ext = ""
	}
	return path.Join(now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
}
