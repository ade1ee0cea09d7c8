package postgres

import (
	"context"
	"testing"
	"time"

	"storea/internal/domain"
	"storea/internal/domain/models"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestVersionRepository_Create_OK(t *testing.T) {
	mock, cfg := newMockRepoConfig(t)
	defer mock.Close()
	r := NewVersionRepository(cfg)

	now := time.Now()
	summary := "Updated structural grid"
	entry := &models.DocumentVersion{
		DocumentID:     "doc-1",
		VersionNumber:  2,
		FilePath:       "documents/doc-1/v2-def.pdf",
		FileSize:       2048,
		UploadedBy:     "user-1",
		ChangesSummary: &summary,
		CreatedAt:      now,
	}

	mock.ExpectQuery(`INSERT INTO document_versions`).
		WithArgs(entry.DocumentID, entry.VersionNumber, entry.FilePath, entry.FileSize, entry.UploadedBy, entry.ChangesSummary, entry.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("ver-1", now))

	err := r.Create(context.Background(), entry)
	require.NoError(t, err)
	require.Equal(t, "ver-1", entry.ID)
}

func TestVersionRepository_Create_MissingDocument(t *testing.T) {
	mock, cfg := newMockRepoConfig(t)
	defer mock.Close()
	r := NewVersionRepository(cfg)

	mock.ExpectQuery(`INSERT INTO document_versions`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := r.Create(context.Background(), &models.DocumentVersion{DocumentID: "missing", VersionNumber: 1})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVersionRepository_ListByDocument(t *testing.T) {
	mock, cfg := newMockRepoConfig(t)
	defer mock.Close()
	r := NewVersionRepository(cfg)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, document_id`).
		WithArgs("doc-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "document_id", "version_number", "file_path", "file_size", "uploaded_by", "changes_summary", "created_at",
		}).
			AddRow("ver-2", "doc-1", 2, "documents/doc-1/v2-def.pdf", int64(2048), "user-1", nil, now).
			AddRow("ver-1", "doc-1", 1, "documents/doc-1/v1-abc.pdf", int64(1024), "user-1", nil, now.Add(-time.Hour)))

	versions, err := r.ListByDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	require.Equal(t, 2, versions[0].VersionNumber)
	require.Equal(t, 1, versions[1].VersionNumber)
}

func TestVersionRepository_ListByDocument_Empty(t *testing.T) {
	mock, cfg := newMockRepoConfig(t)
	defer mock.Close()
	r := NewVersionRepository(cfg)

	mock.ExpectQuery(`SELECT id, document_id`).
		WithArgs("doc-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "document_id", "version_number", "file_path", "file_size", "uploaded_by", "changes_summary", "created_at",
		}))

	versions, err := r.ListByDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	require.NotNil(t, versions)
	require.Empty(t, versions)
}

func TestVersionRepository_MaxVersionNumber_EmptyLedger(t *testing.T) {
	mock, cfg := newMockRepoConfig(t)
	defer mock.Close()
	r := NewVersionRepository(cfg)

	mock.ExpectQuery(`SELECT COALESCE`).
		WithArgs("doc-1").
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(0))

	max, err := r.MaxVersionNumber(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Equal(t, 0, max)
}
