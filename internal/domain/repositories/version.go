package repositories

import (
	"context"

	"storea/internal/domain/models"
)

// VersionRepository handles the append-only version ledger. Entries are
// inserted and read, never updated or deleted.
type VersionRepository interface {
	// Create appends a ledger entry
	Create(ctx context.Context, version *models.DocumentVersion) error

	// GetByID retrieves a ledger entry by ID
	GetByID(ctx context.Context, id string) (*models.DocumentVersion, error)

	// ListByDocument lists all ledger entries for a document, highest
	// version number first (newest first within a number)
	ListByDocument(ctx context.Context, documentID string) ([]models.DocumentVersion, error)

	// MaxVersionNumber returns the highest version number ever recorded in
	// the ledger for a document, or 0 when the ledger is empty. Used to
	// compute the next version number so numbers never collide after a
	// revert lowers the document's own counter.
	MaxVersionNumber(ctx context.Context, documentID string) (int, error)
}
