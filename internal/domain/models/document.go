package models

import (
	"time"
)

// Document is the mutable "current" projection of a file. FilePath and
// Version together form the current pointer; every content blob the
// document has ever pointed at is recorded in the version ledger.
type Document struct {
	ID         string    `json:"id" db:"id"`
	ProjectID  string    `json:"project_id" db:"project_id"`
	Name       string    `json:"name" db:"name"`
	Category   string    `json:"category" db:"category"` // Registry key, e.g. "drawings"
	FilePath   string    `json:"file_path" db:"file_path"`
	FileSize   int64     `json:"file_size" db:"file_size"`
	UploadedBy string    `json:"uploaded_by" db:"uploaded_by"`
	Version    int       `json:"version" db:"version"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// DocumentVersion is an immutable ledger entry: a snapshot of a document's
// content at a specific version number. Entries are append-only and never
// mutated; version numbers may repeat when the current state is archived
// before being superseded.
type DocumentVersion struct {
	ID             string    `json:"id" db:"id"`
	DocumentID     string    `json:"document_id" db:"document_id"`
	VersionNumber  int       `json:"version_number" db:"version_number"`
	FilePath       string    `json:"file_path" db:"file_path"`
	FileSize       int64     `json:"file_size" db:"file_size"`
	UploadedBy     string    `json:"uploaded_by" db:"uploaded_by"`
	ChangesSummary *string   `json:"changes_summary" db:"changes_summary"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
