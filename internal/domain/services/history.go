package services

import (
	"context"

	"storea/internal/domain/models"
)

// HistoryService assembles read models over a document's lifetime. It
// never mutates ledger, document or activity state; repeated calls with no
// intervening writes return equal results (tie order among identical
// timestamps is unspecified).
type HistoryService interface {
	// GetDocumentHistory merges the document's creation event, its version
	// ledger and its activity trail into one timeline, newest first. Any
	// source fetch failure fails the whole call; actor resolution failures
	// degrade per entry to "Unknown User".
	GetDocumentHistory(ctx context.Context, documentID string) ([]models.HistoryItem, error)

	// GetDocumentRevisions returns the current state plus every ledger
	// entry, version number descending
	GetDocumentRevisions(ctx context.Context, documentID string) ([]models.DocumentRevision, error)

	// GetRecentProjectActivity reads the cached dashboard feed
	GetRecentProjectActivity(ctx context.Context, projectID string, limit int) ([]models.FeedItem, error)
}
