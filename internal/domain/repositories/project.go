package repositories

import (
	"context"

	"storea/internal/domain/models"
)

// ProjectRepository handles project persistence
type ProjectRepository interface {
	// Create inserts a new project
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project scoped to its owning user
	GetByID(ctx context.Context, id, userID string) (*models.Project, error)

	// List retrieves all projects for a user
	List(ctx context.Context, userID string) ([]models.Project, error)
}
