package storage

import (
	"context"
	"io"
)

// Service stores uploaded image files and hands back a URL clients can fetch
// them from. Metadata persistence is the caller's concern.
type Service interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}
