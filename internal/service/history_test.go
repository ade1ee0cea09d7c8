package service

import (
	"context"
	"strings"
	"testing"

	"storea/internal/domain"
	"storea/internal/domain/models"
	"storea/internal/domain/services"

	"github.com/stretchr/testify/require"
)

func newHistoryService(f *fixture) services.HistoryService {
	return NewHistoryService(f.docs, f.versions, f.activity, f.profiles, f.feed, testLogger())
}

func historyTypes(items []models.HistoryItem) map[string]int {
	types := map[string]int{}
	for _, item := range items {
		types[item.Type]++
	}
	return types
}

func TestGetDocumentHistory_MergesAllSources(t *testing.T) {
	f := newFixture()
	f.profiles.profiles["user-1"] = models.Profile{ID: "user-1", FullName: "Dana Igo"}
	doc := seedDocument(t, f, "user-1")
	verSvc := newVersionService(f, fakeTxManager{})
	docSvc := newDocumentService(t, f)
	ctx := context.Background()

	_, err := verSvc.CreateVersion(ctx, &services.CreateVersionRequest{
		DocumentID: doc.ID, UserID: "user-1", FileName: "r2.pdf",
		File: strings.NewReader("v2"), Size: 2, ChangesSummary: "Revised layout",
	})
	require.NoError(t, err)

	require.NoError(t, docSvc.RecordActivity(ctx, &services.RecordActivityRequest{
		DocumentID: doc.ID, UserID: "user-1", Action: models.ActionDownloaded,
	}))

	items, err := newHistoryService(f).GetDocumentHistory(ctx, doc.ID)
	require.NoError(t, err)

	types := historyTypes(items)
	require.Equal(t, 1, types[models.HistoryTypeCreated])
	require.Equal(t, 1, types[models.HistoryTypeVersionCreated])
	require.Equal(t, 1, types[models.HistoryTypeDownloaded])
	// The initial upload appears once as "created", never doubled by its
	// ledger entry or its activity row
	require.Len(t, items, 3)

	for _, item := range items {
		require.Equal(t, "Dana Igo", item.UserName)
	}

	// Ledger-backed items carry their version number
	for _, item := range items {
		if item.Type == models.HistoryTypeVersionCreated {
			require.NotNil(t, item.Version)
			require.Equal(t, 2, *item.Version)
			require.Equal(t, "Revised layout", item.Details)
		}
	}
}

func TestGetDocumentHistory_RevertTimeline(t *testing.T) {
	f := newFixture()
	doc := seedDocument(t, f, "user-1")
	verSvc := newVersionService(f, fakeTxManager{})
	ctx := context.Background()

	_, err := verSvc.CreateVersion(ctx, &services.CreateVersionRequest{
		DocumentID: doc.ID, UserID: "user-1", FileName: "r2.pdf",
		File: strings.NewReader("v2"), Size: 2,
	})
	require.NoError(t, err)

	_, err = verSvc.RevertToVersion(ctx, &services.RevertRequest{
		DocumentID: doc.ID, UserID: "user-1", VersionID: "ver-1",
	})
	require.NoError(t, err)

	items, err := newHistoryService(f).GetDocumentHistory(ctx, doc.ID)
	require.NoError(t, err)

	types := historyTypes(items)
	require.Equal(t, 1, types[models.HistoryTypeCreated])
	require.Equal(t, 1, types[models.HistoryTypeVersionCreated])
	require.Equal(t, 1, types[models.HistoryTypeArchived])
	require.Equal(t, 1, types[models.HistoryTypeReverted])
}

func TestGetDocumentHistory_UnknownUserDegradation(t *testing.T) {
	f := newFixture()
	f.profiles.profiles["user-1"] = models.Profile{ID: "user-1", FullName: "Dana Igo"}
	doc := seedDocument(t, f, "user-1")
	verSvc := newVersionService(f, fakeTxManager{})
	ctx := context.Background()

	// user-ghost has no profile row
	_, err := verSvc.CreateVersion(ctx, &services.CreateVersionRequest{
		DocumentID: doc.ID, UserID: "user-ghost", FileName: "r2.pdf",
		File: strings.NewReader("v2"), Size: 2,
	})
	require.NoError(t, err)

	items, err := newHistoryService(f).GetDocumentHistory(ctx, doc.ID)
	require.NoError(t, err)

	byType := map[string]models.HistoryItem{}
	for _, item := range items {
		byType[item.Type] = item
	}
	require.Equal(t, "Dana Igo", byType[models.HistoryTypeCreated].UserName)
	require.Equal(t, models.UnknownUserName, byType[models.HistoryTypeVersionCreated].UserName)
}

func TestGetDocumentHistory_LookupFailureDegradesAllNames(t *testing.T) {
	f := newFixture()
	doc := seedDocument(t, f, "user-1")
	f.profiles.err = errFeedDown

	items, err := newHistoryService(f).GetDocumentHistory(context.Background(), doc.ID)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	for _, item := range items {
		require.Equal(t, models.UnknownUserName, item.UserName)
	}
}

func TestGetDocumentHistory_SourceFailureFailsWholeRead(t *testing.T) {
	f := newFixture()
	doc := seedDocument(t, f, "user-1")
	f.activity.listErr = errFeedDown

	_, err := newHistoryService(f).GetDocumentHistory(context.Background(), doc.ID)
	require.Error(t, err)
}

func TestGetDocumentHistory_ReadIsPure(t *testing.T) {
	f := newFixture()
	doc := seedDocument(t, f, "user-1")
	svc := newHistoryService(f)
	ctx := context.Background()

	first, err := svc.GetDocumentHistory(ctx, doc.ID)
	require.NoError(t, err)
	second, err := svc.GetDocumentHistory(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// No writes leaked from the reads
	entries, err := f.versions.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, f.activity.entries, 1)
}

func TestGetDocumentHistory_NotFound(t *testing.T) {
	f := newFixture()

	_, err := newHistoryService(f).GetDocumentHistory(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetDocumentRevisions_CurrentFirst(t *testing.T) {
	f := newFixture()
	f.profiles.profiles["user-1"] = models.Profile{ID: "user-1", FullName: "Dana Igo"}
	doc := seedDocument(t, f, "user-1")
	verSvc := newVersionService(f, fakeTxManager{})
	ctx := context.Background()

	_, err := verSvc.CreateVersion(ctx, &services.CreateVersionRequest{
		DocumentID: doc.ID, UserID: "user-1", FileName: "r2.pdf",
		File: strings.NewReader("v2"), Size: 2,
	})
	require.NoError(t, err)

	revisions, err := newHistoryService(f).GetDocumentRevisions(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, revisions, 3) // current + two ledger entries

	require.True(t, revisions[0].IsCurrent)
	require.Equal(t, 2, revisions[0].VersionNumber)
	require.Equal(t, "Dana Igo", revisions[0].UploaderName)

	for _, rev := range revisions[1:] {
		require.False(t, rev.IsCurrent)
	}
	require.Equal(t, 1, revisions[2].VersionNumber)
}

func TestGetRecentProjectActivity_ClampsLimit(t *testing.T) {
	f := newFixture()
	seedDocument(t, f, "user-1")

	items, err := newHistoryService(f).GetRecentProjectActivity(context.Background(), "proj-1", -3)
	require.NoError(t, err)
	require.Len(t, items, 1)
}
