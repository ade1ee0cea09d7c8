// Package blob stores document content blobs. Backends share the
// write-before-metadata contract: a path returned by a successful Put is
// durable before any database row references it.
package blob

import (
	"context"
	"errors"
	"io"
)

// ErrBlobNotFound is returned when no blob exists at the requested path
var ErrBlobNotFound = errors.New("blob not found")

// Store is the blob storage contract. Paths are opaque slash-separated
// keys produced by VersionPath/DocumentPath; implementations must treat
// them as immutable once written.
type Store interface {
	// Put writes size bytes from r at path. Writing the same path twice
	// is undefined; callers guarantee uniqueness via path tokens.
	Put(ctx context.Context, path string, r io.Reader, size int64) error

	// Get opens the blob at path for reading. The caller must close the
	// returned reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether a blob is present at path
	Exists(ctx context.Context, path string) (bool, error)
}
