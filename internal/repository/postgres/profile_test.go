package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_GetByIDs_MissingIDsAbsent(t *testing.T) {
	mock, cfg := newMockRepoConfig(t)
	defer mock.Close()
	r := NewProfileRepository(cfg)

	now := time.Now()
	ids := []string{"user-1", "user-gone"}

	mock.ExpectQuery(`SELECT id, full_name`).
		WithArgs(ids).
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "email", "company", "created_at"}).
			AddRow("user-1", "Dana Igo", "dana@example.com", "Igo Constructions", now))

	profiles, err := r.GetByIDs(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Equal(t, "Dana Igo", profiles["user-1"].FullName)
	_, ok := profiles["user-gone"]
	require.False(t, ok)
}

func TestProfileRepository_GetByIDs_NoIDs(t *testing.T) {
	mock, cfg := newMockRepoConfig(t)
	defer mock.Close()
	r := NewProfileRepository(cfg)

	// No query expected for an empty ID set
	profiles, err := r.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, profiles)
	require.NoError(t, mock.ExpectationsWereMet())
}
