package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"storea/internal/domain"
	"storea/internal/domain/models"
	"storea/internal/domain/repositories"
)

// PostgresVersionRepository implements the VersionRepository interface.
// The ledger is append-only: there are deliberately no Update or Delete
// methods on this type.
type PostgresVersionRepository struct {
	pool   Pool
	tables *TableNames
	logger *slog.Logger
}

// NewVersionRepository creates a new version ledger repository
func NewVersionRepository(config *RepositoryConfig) repositories.VersionRepository {
	return &PostgresVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create appends a ledger entry
func (r *PostgresVersionRepository) Create(ctx context.Context, version *models.DocumentVersion) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, version_number, file_path, file_size, uploaded_by, changes_summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, r.tables.Versions)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		version.DocumentID,
		version.VersionNumber,
		version.FilePath,
		version.FileSize,
		version.UploadedBy,
		version.ChangesSummary,
		version.CreatedAt,
	).Scan(&version.ID, &version.CreatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("document %s: %w", version.DocumentID, domain.ErrNotFound)
		}
		return fmt.Errorf("create version entry: %w", err)
	}

	return nil
}

// GetByID retrieves a ledger entry by ID
func (r *PostgresVersionRepository) GetByID(ctx context.Context, id string) (*models.DocumentVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, version_number, file_path, file_size, uploaded_by, changes_summary, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Versions)

	var version models.DocumentVersion
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&version.ID,
		&version.DocumentID,
		&version.VersionNumber,
		&version.FilePath,
		&version.FileSize,
		&version.UploadedBy,
		&version.ChangesSummary,
		&version.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("version entry %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get version entry: %w", err)
	}

	return &version, nil
}

// ListByDocument lists all ledger entries for a document, highest version
// number first, newest first within a number (archive snapshots can reuse
// a number already present in the ledger)
func (r *PostgresVersionRepository) ListByDocument(ctx context.Context, documentID string) ([]models.DocumentVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, version_number, file_path, file_size, uploaded_by, changes_summary, created_at
		FROM %s
		WHERE document_id = $1
		ORDER BY version_number DESC, created_at DESC
	`, r.tables.Versions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list version entries: %w", err)
	}
	defer rows.Close()

	var versions []models.DocumentVersion
	for rows.Next() {
		var version models.DocumentVersion
		err := rows.Scan(
			&version.ID,
			&version.DocumentID,
			&version.VersionNumber,
			&version.FilePath,
			&version.FileSize,
			&version.UploadedBy,
			&version.ChangesSummary,
			&version.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan version entry: %w", err)
		}
		versions = append(versions, version)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate version entries: %w", err)
	}

	// Return empty slice instead of nil
	if versions == nil {
		versions = []models.DocumentVersion{}
	}

	return versions, nil
}

// MaxVersionNumber returns the highest version number in the ledger for a
// document, or 0 for an empty ledger
func (r *PostgresVersionRepository) MaxVersionNumber(ctx context.Context, documentID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(version_number), 0)
		FROM %s
		WHERE document_id = $1
	`, r.tables.Versions)

	var max int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, documentID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max version number: %w", err)
	}

	return max, nil
}
