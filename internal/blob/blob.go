package blob

import (
	"context"
	"io"
)

// Object is a stored blob, addressed for deletion by Key and for serving by URL.
type Object struct {
	Key string
	URL string
}

// Store is the object-storage surface the handlers need.
type Store interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType, folder, filename string) (*Object, error)
	Delete(ctx context.Context, key string) error
}
