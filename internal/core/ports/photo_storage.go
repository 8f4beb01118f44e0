package ports

import (
	"context"
	"io"
)

// PhotoStorage is the object storage bucket letters' photos live in.
type PhotoStorage interface {
	// Upload stores body under name.
	Upload(ctx context.Context, name string, body io.Reader, size int64, contentType string) error
	// PublicURL resolves a stored object name to a fully-qualified URL.
	PublicURL(name string) string
}
