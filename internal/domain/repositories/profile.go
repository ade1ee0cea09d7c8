package repositories

import (
	"context"

	"storea/internal/domain/models"
)

// ProfileRepository resolves actor display names
type ProfileRepository interface {
	// GetByID retrieves a profile by user ID
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// GetByIDs retrieves profiles for a set of user IDs, keyed by ID.
	// IDs without a profile are simply absent from the result.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Profile, error)
}
