package storage

import (
	"context"
	"io"
)

// FileStorage keeps uploaded files. Keys are slash separated relative paths
// such as "posts/<uuid>.jpg".
type FileStorage interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
