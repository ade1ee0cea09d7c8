package models

import (
	"time"
)

// Activity actions recorded against documents. Ledger-backed actions
// (version_created, archived, reverted) are written by the version
// manager; the remainder arrive from client-side events.
const (
	ActionUploaded       = "uploaded"
	ActionVersionCreated = "version_created"
	ActionArchived       = "archived"
	ActionReverted       = "reverted"
	ActionViewed         = "viewed"
	ActionDownloaded     = "downloaded"
	ActionShared         = "shared"
	ActionSuperseded     = "superseded"
	ActionTransmitted    = "transmitted"
)

// EntityTypeDocument scopes activity entries to the documents table.
const EntityTypeDocument = "document"

// ActivityEntry is a generic audit record keyed by entity type and ID.
type ActivityEntry struct {
	ID          string         `json:"id" db:"id"`
	EntityType  string         `json:"entity_type" db:"entity_type"`
	EntityID    string         `json:"entity_id" db:"entity_id"`
	Action      string         `json:"action" db:"action"`
	Description string         `json:"description" db:"description"`
	Metadata    map[string]any `json:"metadata,omitempty" db:"metadata"`
	UserID      string         `json:"user_id" db:"user_id"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// FeedItem is the denormalized row kept in the Redis recent-activity feed
// for project dashboards.
type FeedItem struct {
	DocumentID   string    `json:"document_id"`
	DocumentName string    `json:"document_name"`
	Action       string    `json:"action"`
	Description  string    `json:"description"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}
