package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"storea/internal/domain/models"
	"storea/internal/domain/repositories"
)

// PostgresActivityRepository implements the ActivityRepository interface
type PostgresActivityRepository struct {
	pool   Pool
	tables *TableNames
	logger *slog.Logger
}

// NewActivityRepository creates a new activity log repository
func NewActivityRepository(config *RepositoryConfig) repositories.ActivityRepository {
	return &PostgresActivityRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create appends an activity entry
func (r *PostgresActivityRepository) Create(ctx context.Context, entry *models.ActivityEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (entity_type, entity_id, action, description, metadata, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, r.tables.ActivityLog)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.EntityType,
		entry.EntityID,
		entry.Action,
		entry.Description,
		entry.Metadata,
		entry.UserID,
		entry.CreatedAt,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("create activity entry: %w", err)
	}

	return nil
}

// ListByEntity lists entries for an entity, newest first
func (r *PostgresActivityRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.ActivityEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, entity_type, entity_id, action, description, metadata, user_id, created_at
		FROM %s
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
	`, r.tables.ActivityLog)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list activity entries: %w", err)
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var entry models.ActivityEntry
		err := rows.Scan(
			&entry.ID,
			&entry.EntityType,
			&entry.EntityID,
			&entry.Action,
			&entry.Description,
			&entry.Metadata,
			&entry.UserID,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity entries: %w", err)
	}

	// Return empty slice instead of nil
	if entries == nil {
		entries = []models.ActivityEntry{}
	}

	return entries, nil
}
