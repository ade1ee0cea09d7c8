package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storea/internal/domain/models"
	"storea/internal/domain/repositories"

	"github.com/redis/go-redis/v9"
)

const (
	feedKeyPrefix = "storea:feed:"       // List of recent activity: storea:feed:{project_id}
	feedTTL       = 7 * 24 * time.Hour   // Feed expires a week after the last write
)

// ActivityFeedRepository keeps a capped, per-project list of recent
// document activity in Redis for dashboard rendering. The activity_log
// table remains the source of truth; this is a write-through cache.
type ActivityFeedRepository struct {
	client  *redis.Client
	maxSize int
}

// NewActivityFeedRepository creates a new activity feed repository
func NewActivityFeedRepository(client *redis.Client, maxSize int) repositories.ActivityFeed {
	return &ActivityFeedRepository{
		client:  client,
		maxSize: maxSize,
	}
}

// Push prepends an item to the project's feed and trims it to maxSize
func (r *ActivityFeedRepository) Push(ctx context.Context, projectID string, item *models.FeedItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal feed item: %w", err)
	}

	key := r.feedKey(projectID)

	// Pipeline keeps push, trim and expiry in one round trip
	pipe := r.client.Pipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(r.maxSize-1))
	pipe.Expire(ctx, key, feedTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push feed item: %w", err)
	}

	return nil
}

// Recent returns up to limit items, newest first. A missing key yields an
// empty slice.
func (r *ActivityFeedRepository) Recent(ctx context.Context, projectID string, limit int) ([]models.FeedItem, error) {
	if limit <= 0 || limit > r.maxSize {
		limit = r.maxSize
	}

	raw, err := r.client.LRange(ctx, r.feedKey(projectID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	items := make([]models.FeedItem, 0, len(raw))
	for _, entry := range raw {
		var item models.FeedItem
		if err := json.Unmarshal([]byte(entry), &item); err != nil {
			return nil, fmt.Errorf("unmarshal feed item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *ActivityFeedRepository) feedKey(projectID string) string {
	return feedKeyPrefix + projectID
}

// NoopActivityFeed is used when Redis is not configured; pushes are
// dropped and reads come back empty.
type NoopActivityFeed struct{}

// NewNoopActivityFeed creates a feed that does nothing
func NewNoopActivityFeed() repositories.ActivityFeed {
	return &NoopActivityFeed{}
}

// Push drops the item
func (f *NoopActivityFeed) Push(ctx context.Context, projectID string, item *models.FeedItem) error {
	return nil
}

// Recent returns an empty feed
func (f *NoopActivityFeed) Recent(ctx context.Context, projectID string, limit int) ([]models.FeedItem, error) {
	return []models.FeedItem{}, nil
}
