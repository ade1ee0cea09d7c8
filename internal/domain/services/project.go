package services

import (
	"context"

	"storea/internal/domain/models"
)

// ProjectService handles project business logic
type ProjectService interface {
	// CreateProject creates a new project
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	// GetProject retrieves a project by ID
	GetProject(ctx context.Context, id, userID string) (*models.Project, error)

	// ListProjects retrieves all projects for a user
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
}

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	UserID string `json:"-"` // Set by handler from auth context, not from request body
	Name   string `json:"name"`
}
