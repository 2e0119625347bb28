// Package blob stores avatar images in an S3-compatible bucket.
package blob

import (
	"context"
	"io"
)

// Store writes an object and returns its publicly reachable URL. Writes are
// upsert-style: an existing object at the same key is overwritten.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
