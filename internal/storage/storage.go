package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// ImageStore persists uploaded images and returns the URL they are served from.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Name() string
}

// ObjectName builds a stored name of the form "<unix millis>-<base filename>".
func ObjectName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}
