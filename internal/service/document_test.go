package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"storea/internal/domain"
	"storea/internal/domain/models"
	"storea/internal/domain/services"

	"github.com/stretchr/testify/require"
)

func TestCreateDocument_WritesLedgerAndActivity(t *testing.T) {
	f := newFixture()
	svc := newDocumentService(t, f)
	ctx := context.Background()

	doc, err := svc.CreateDocument(ctx, &services.CreateDocumentRequest{
		ProjectID: "proj-1",
		UserID:    "user-1",
		Name:      "Site Plan.pdf",
		Category:  "drawings",
		FileName:  "site-plan.pdf",
		File:      strings.NewReader("content"),
		Size:      7,
	})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Version)
	require.NotEmpty(t, doc.ID)
	require.NotEmpty(t, doc.FilePath)

	// Blob is durable under the returned path
	ok, err := f.blobs.Exists(ctx, doc.FilePath)
	require.NoError(t, err)
	require.True(t, ok)

	// Version-1 ledger entry matches the document's pointer
	entries, err := f.versions.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 1, entries[0].VersionNumber)
	require.Equal(t, doc.FilePath, entries[0].FilePath)
	require.Equal(t, summaryInitialUpload, *entries[0].ChangesSummary)

	require.Equal(t, []string{models.ActionUploaded}, f.activity.actions())

	// Feed received the upload
	items, err := f.feed.Recent(ctx, "proj-1", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, doc.ID, items[0].DocumentID)
}

func TestCreateDocument_DefaultsCategory(t *testing.T) {
	f := newFixture()
	svc := newDocumentService(t, f)

	doc, err := svc.CreateDocument(context.Background(), &services.CreateDocumentRequest{
		ProjectID: "proj-1",
		UserID:    "user-1",
		Name:      "Notes.txt",
		FileName:  "notes.txt",
		File:      strings.NewReader("x"),
		Size:      1,
	})
	require.NoError(t, err)
	require.Equal(t, "general", doc.Category)
}

func TestCreateDocument_UnknownCategory(t *testing.T) {
	f := newFixture()
	svc := newDocumentService(t, f)

	_, err := svc.CreateDocument(context.Background(), &services.CreateDocumentRequest{
		ProjectID: "proj-1",
		UserID:    "user-1",
		Name:      "Notes.txt",
		Category:  "blueprints",
		FileName:  "notes.txt",
		File:      strings.NewReader("x"),
		Size:      1,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateDocument_DuplicateName(t *testing.T) {
	f := newFixture()
	svc := newDocumentService(t, f)
	ctx := context.Background()

	seedDocument(t, f, "user-1")

	_, err := svc.CreateDocument(ctx, &services.CreateDocumentRequest{
		ProjectID: "proj-1",
		UserID:    "user-2",
		Name:      "Site Plan.pdf",
		Category:  "drawings",
		FileName:  "site-plan.pdf",
		File:      strings.NewReader("other"),
		Size:      5,
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateDocument_FeedFailureDoesNotFailUpload(t *testing.T) {
	f := newFixture()
	f.feed.pushErr = errFeedDown
	svc := newDocumentService(t, f)

	doc, err := svc.CreateDocument(context.Background(), &services.CreateDocumentRequest{
		ProjectID: "proj-1",
		UserID:    "user-1",
		Name:      "Site Plan.pdf",
		FileName:  "site-plan.pdf",
		File:      strings.NewReader("content"),
		Size:      7,
	})
	require.NoError(t, err)
	require.NotNil(t, doc)
}

func TestOpenCurrentFile_StreamsCurrentContent(t *testing.T) {
	f := newFixture()
	doc := seedDocument(t, f, "user-1")
	svc := newDocumentService(t, f)

	rc, got, err := svc.OpenCurrentFile(context.Background(), doc.ID)
	require.NoError(t, err)
	defer rc.Close()

	require.Equal(t, doc.ID, got.ID)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "v1 content", string(content))
}

func TestRecordActivity_AcceptsClientActions(t *testing.T) {
	f := newFixture()
	doc := seedDocument(t, f, "user-1")
	svc := newDocumentService(t, f)

	err := svc.RecordActivity(context.Background(), &services.RecordActivityRequest{
		DocumentID: doc.ID,
		UserID:     "user-2",
		Action:     models.ActionViewed,
	})
	require.NoError(t, err)
	require.Contains(t, f.activity.actions(), models.ActionViewed)
}

func TestRecordActivity_RejectsLedgerActions(t *testing.T) {
	f := newFixture()
	doc := seedDocument(t, f, "user-1")
	svc := newDocumentService(t, f)

	for _, action := range []string{models.ActionVersionCreated, models.ActionArchived, models.ActionReverted} {
		err := svc.RecordActivity(context.Background(), &services.RecordActivityRequest{
			DocumentID: doc.ID,
			UserID:     "user-2",
			Action:     action,
		})
		require.ErrorIs(t, err, domain.ErrValidation, "action %s", action)
	}
}

func TestDeleteDocument_NotFound(t *testing.T) {
	f := newFixture()
	svc := newDocumentService(t, f)

	err := svc.DeleteDocument(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
