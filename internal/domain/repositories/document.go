package repositories

import (
	"context"

	"storea/internal/domain/models"
)

// DocumentRepository handles document persistence. The current pointer
// (file_path, version) is only ever moved through UpdateCurrentPointer,
// which enforces a compare-and-swap on the expected version.
type DocumentRepository interface {
	// Create inserts a new document (version 1)
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// ListByProject lists all documents in a project, newest first
	ListByProject(ctx context.Context, projectID string) ([]models.Document, error)

	// UpdateCurrentPointer moves the document's current pointer to
	// (filePath, fileSize, newVersion), but only if the stored version
	// still equals expectedVersion. Returns domain.ErrVersionConflict
	// when another writer got there first.
	UpdateCurrentPointer(ctx context.Context, id string, expectedVersion, newVersion int, filePath string, fileSize int64) error

	// Delete soft-deletes a document
	Delete(ctx context.Context, id string) error
}
