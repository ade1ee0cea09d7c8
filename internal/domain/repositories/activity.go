package repositories

import (
	"context"

	"storea/internal/domain/models"
)

// ActivityRepository handles the append-only audit trail
type ActivityRepository interface {
	// Create appends an activity entry
	Create(ctx context.Context, entry *models.ActivityEntry) error

	// ListByEntity lists entries for an entity, newest first
	ListByEntity(ctx context.Context, entityType, entityID string) ([]models.ActivityEntry, error)
}

// ActivityFeed is the write-through cache of recent project activity
// backing the dashboard feed. A nil/no-op implementation is valid: the
// feed is an optimization, not a source of truth.
type ActivityFeed interface {
	// Push prepends an item to the project's feed, trimming to the
	// configured feed size
	Push(ctx context.Context, projectID string, item *models.FeedItem) error

	// Recent returns up to limit items, newest first. A missing feed
	// yields an empty slice, not an error.
	Recent(ctx context.Context, projectID string, limit int) ([]models.FeedItem, error)
}
