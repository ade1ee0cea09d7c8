package services

import (
	"context"
	"io"

	"storea/internal/domain/models"
)

// DocumentService handles document business logic: creation with the
// initial upload, reads, listing, soft deletion and client activity events.
type DocumentService interface {
	// CreateDocument stores the uploaded file, inserts the document row at
	// version 1 and writes the version-1 ledger entry plus an "uploaded"
	// activity entry
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error)

	// GetDocument retrieves a document by ID
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// ListDocuments lists all documents in a project
	ListDocuments(ctx context.Context, projectID string) ([]models.Document, error)

	// OpenCurrentFile opens the document's current content blob for reading.
	// The caller must close the returned reader.
	OpenCurrentFile(ctx context.Context, id string) (io.ReadCloser, *models.Document, error)

	// DeleteDocument soft-deletes a document
	DeleteDocument(ctx context.Context, id string) error

	// RecordActivity appends a client-side event (viewed, downloaded,
	// shared, transmitted) to the document's audit trail
	RecordActivity(ctx context.Context, req *RecordActivityRequest) error
}

// CreateDocumentRequest represents a document creation request. File is
// consumed exactly once; Size must match the number of readable bytes.
type CreateDocumentRequest struct {
	ProjectID string
	UserID    string
	Name      string
	Category  string
	FileName  string
	File      io.Reader
	Size      int64
}

// RecordActivityRequest represents a client activity event
type RecordActivityRequest struct {
	DocumentID  string         `json:"-"`
	UserID      string         `json:"-"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
