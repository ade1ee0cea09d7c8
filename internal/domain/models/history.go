package models

import (
	"time"
)

// History item types. These mirror the activity actions plus the
// synthetic "created" item derived from the document row itself.
const (
	HistoryTypeCreated        = "created"
	HistoryTypeVersionCreated = "version_created"
	HistoryTypeViewed         = "viewed"
	HistoryTypeDownloaded     = "downloaded"
	HistoryTypeShared         = "shared"
	HistoryTypeSuperseded     = "superseded"
	HistoryTypeArchived       = "archived"
	HistoryTypeReverted       = "reverted"
	HistoryTypeTransmitted    = "transmitted"
)

// HistoryItem is a derived, read-only row in the merged activity timeline
// for a document. Produced fresh on every read; never persisted.
type HistoryItem struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	UserName  string         `json:"user_name"`
	UserID    string         `json:"user_id"`
	Details   string         `json:"details"`
	Version   *int           `json:"version,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// DocumentRevision is the version-focused read model: the current document
// state plus every ledger entry, each enriched with the uploader's name.
type DocumentRevision struct {
	ID             string    `json:"id"`
	VersionNumber  int       `json:"version_number"`
	FilePath       string    `json:"file_path"`
	FileSize       int64     `json:"file_size"`
	UploadedBy     string    `json:"uploaded_by"`
	UploaderName   string    `json:"uploader_name"`
	ChangesSummary *string   `json:"changes_summary,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	IsCurrent      bool      `json:"is_current"`
}
