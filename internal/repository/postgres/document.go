package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"storea/internal/domain"
	"storea/internal/domain/models"
	"storea/internal/domain/repositories"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new document (version 1)
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	// The ID is generated by the caller: the content blob is written
	// under the document's path before this row exists.
	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, name, category, file_path, file_size, uploaded_by, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.ID,
		doc.ProjectID,
		doc.Name,
		doc.Category,
		doc.FilePath,
		doc.FileSize,
		doc.UploadedBy,
		doc.Version,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			existingID, queryErr := r.getExistingDocumentID(ctx, doc.ProjectID, doc.Name)
			if queryErr != nil {
				return fmt.Errorf("document '%s' already exists in this project: %w", doc.Name, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("document '%s' already exists in this project", doc.Name),
				ResourceType: "document",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, name, category, file_path, file_size, uploaded_by, version, created_at, updated_at
		FROM %s
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Documents)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.ProjectID,
		&doc.Name,
		&doc.Category,
		&doc.FilePath,
		&doc.FileSize,
		&doc.UploadedBy,
		&doc.Version,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

// ListByProject lists all documents in a project, newest first
func (r *PostgresDocumentRepository) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, name, category, file_path, file_size, uploaded_by, version, created_at, updated_at
		FROM %s
		WHERE project_id = $1 AND deleted_at IS NULL
		ORDER BY updated_at DESC
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(
			&doc.ID,
			&doc.ProjectID,
			&doc.Name,
			&doc.Category,
			&doc.FilePath,
			&doc.FileSize,
			&doc.UploadedBy,
			&doc.Version,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	// Return empty slice instead of nil
	if documents == nil {
		documents = []models.Document{}
	}

	return documents, nil
}

// UpdateCurrentPointer moves the current pointer with a compare-and-swap
// on the expected version. Zero rows affected means either the document is
// gone or another writer advanced it; the two cases are distinguished with
// a follow-up existence check so the caller gets the right error.
func (r *PostgresDocumentRepository) UpdateCurrentPointer(ctx context.Context, id string, expectedVersion, newVersion int, filePath string, fileSize int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET file_path = $1, file_size = $2, version = $3, updated_at = NOW()
		WHERE id = $4 AND version = $5 AND deleted_at IS NULL
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, filePath, fileSize, newVersion, id, expectedVersion)
	if err != nil {
		return fmt.Errorf("update current pointer: %w", err)
	}

	if result.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return &domain.VersionConflictError{DocumentID: id, ExpectedVersion: expectedVersion}
	}

	return nil
}

// Delete soft-deletes a document by setting deleted_at
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, r.tables.Documents)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// getExistingDocumentID queries for an existing document by unique constraint fields
func (r *PostgresDocumentRepository) getExistingDocumentID(ctx context.Context, projectID, name string) (string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE project_id = $1 AND name = $2 AND deleted_at IS NULL
	`, r.tables.Documents)

	var id string
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, projectID, name).Scan(&id); err != nil {
		return "", fmt.Errorf("get existing document ID: %w", err)
	}

	return id, nil
}
