package services

import (
	"context"
	"io"

	"storea/internal/domain/models"
)

// VersionService maintains the invariant "exactly one current content blob
// per document, with every superseded blob retrievable by version number".
type VersionService interface {
	// CreateVersion stores the uploaded file as the document's next
	// version: blob write, ledger append and a compare-and-swap move of
	// the document's current pointer. Returns domain.ErrVersionConflict
	// when a concurrent writer advanced the document first.
	CreateVersion(ctx context.Context, req *CreateVersionRequest) (*models.DocumentVersion, error)

	// ArchiveCurrentVersion snapshots the document's current pointer into
	// the ledger without moving it, so the current content stays
	// retrievable after the pointer changes
	ArchiveCurrentVersion(ctx context.Context, documentID, userID string) (*models.DocumentVersion, error)

	// RevertToVersion archives the current state and moves the document's
	// current pointer to the given ledger entry. The archive step is
	// mandatory: if it fails, the revert does not proceed.
	RevertToVersion(ctx context.Context, req *RevertRequest) (*models.Document, error)
}

// CreateVersionRequest represents a new-revision upload
type CreateVersionRequest struct {
	DocumentID     string
	UserID         string
	FileName       string
	File           io.Reader
	Size           int64
	ChangesSummary string
}

// RevertRequest identifies the ledger entry to restore
type RevertRequest struct {
	DocumentID string `json:"-"`
	UserID     string `json:"-"`
	VersionID  string `json:"version_id"`
}
