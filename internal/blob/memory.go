package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore is an in-memory blob store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory blob store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// Put stores size bytes from r at path
func (s *MemoryStore) Put(ctx context.Context, path string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read blob: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("write blob: size mismatch: expected %d bytes, got %d", size, len(data))
	}

	s.mu.Lock()
	s.blobs[path] = data
	s.mu.Unlock()
	return nil
}

// Get opens the blob at path for reading
func (s *MemoryStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.blobs[path]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrBlobNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Exists reports whether a blob is present at path
func (s *MemoryStore) Exists(ctx context.Context, path string) (bool, error) {
	s.mu.RLock()
	_, ok := s.blobs[path]
	s.mu.RUnlock()
	return ok, nil
}

// Len returns the number of stored blobs
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
