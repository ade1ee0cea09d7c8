package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileSystemStore is a filesystem-backed blob store. Blob paths map
// directly to files under the root directory:
//
//	<root>/
//	  documents/
//	    <documentID>/
//	      v1-<token>.pdf
//	      v2-<token>.pdf
type FileSystemStore struct {
	root string
}

// NewFileSystemStore creates a blob store rooted at the given directory
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &FileSystemStore{root: root}, nil
}

// Put writes the blob to a temp file and renames it into place, so a
// partially written blob is never visible at its final path.
func (s *FileSystemStore) Put(ctx context.Context, path string, r io.Reader, size int64) error {
	dest, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create blob directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	tmpName := tmp.Name()

	written, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write blob: %w", err)
	}
	if written != size {
		os.Remove(tmpName)
		return fmt.Errorf("write blob: size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finalize blob: %w", err)
	}

	return nil
}

// Get opens the blob at path for reading
func (s *FileSystemStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	src, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrBlobNotFound)
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

// Exists reports whether a blob is present at path
func (s *FileSystemStore) Exists(ctx context.Context, path string) (bool, error) {
	dest, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(dest); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat blob: %w", err)
	}
	return true, nil
}

// resolve maps a blob key to an absolute file path, rejecting keys that
// would escape the root
func (s *FileSystemStore) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid blob path %q", path)
	}
	return filepath.Join(s.root, cleaned), nil
}
