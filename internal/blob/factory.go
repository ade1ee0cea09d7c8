package blob

import (
	"context"
	"fmt"

	"storea/internal/config"
)

// NewStoreFromConfig creates a blob Store based on the configured backend
func NewStoreFromConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.BlobBackend {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.BlobRoot == "" {
			return nil, fmt.Errorf("filesystem blob store requires BLOB_ROOT to be set")
		}
		return NewFileSystemStore(cfg.BlobRoot)
	case "s3":
		return NewS3Store(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown blob backend: %s", cfg.BlobBackend)
	}
}
