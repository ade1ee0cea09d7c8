package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"storea/internal/blob"
	"storea/internal/categories"
	"storea/internal/domain"
	"storea/internal/domain/models"
	"storea/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry(t *testing.T) *categories.Registry {
	t.Helper()
	registry, err := categories.NewRegistry()
	if err != nil {
		t.Fatalf("load category registry: %v", err)
	}
	return registry
}

// fakeDocumentRepo is an in-memory DocumentRepository with the same
// compare-and-swap behavior as the Postgres implementation.
type fakeDocumentRepo struct {
	docs map[string]*models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[string]*models.Document{}}
}

func (f *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	for _, existing := range f.docs {
		if existing.ProjectID == doc.ProjectID && existing.Name == doc.Name {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("document '%s' already exists in this project", doc.Name),
				ResourceType: "document",
				ResourceID:   existing.ID,
			}
		}
	}
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDocumentRepo) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	docs := []models.Document{}
	for _, doc := range f.docs {
		if doc.ProjectID == projectID {
			docs = append(docs, *doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].UpdatedAt.After(docs[j].UpdatedAt) })
	return docs, nil
}

func (f *fakeDocumentRepo) UpdateCurrentPointer(ctx context.Context, id string, expectedVersion, newVersion int, filePath string, fileSize int64) error {
	doc, ok := f.docs[id]
	if !ok {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	if doc.Version != expectedVersion {
		return &domain.VersionConflictError{DocumentID: id, ExpectedVersion: expectedVersion}
	}
	doc.FilePath = filePath
	doc.FileSize = fileSize
	doc.Version = newVersion
	doc.UpdatedAt = time.Now()
	return nil
}

func (f *fakeDocumentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	delete(f.docs, id)
	return nil
}

// fakeVersionRepo is an in-memory append-only version ledger
type fakeVersionRepo struct {
	entries   []models.DocumentVersion
	createErr error
}

func newFakeVersionRepo() *fakeVersionRepo {
	return &fakeVersionRepo{}
}

func (f *fakeVersionRepo) Create(ctx context.Context, version *models.DocumentVersion) error {
	if f.createErr != nil {
		return f.createErr
	}
	version.ID = fmt.Sprintf("ver-%d", len(f.entries)+1)
	f.entries = append(f.entries, *version)
	return nil
}

func (f *fakeVersionRepo) GetByID(ctx context.Context, id string) (*models.DocumentVersion, error) {
	for _, entry := range f.entries {
		if entry.ID == id {
			copied := entry
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("version entry %s: %w", id, domain.ErrNotFound)
}

func (f *fakeVersionRepo) ListByDocument(ctx context.Context, documentID string) ([]models.DocumentVersion, error) {
	entries := []models.DocumentVersion{}
	for _, entry := range f.entries {
		if entry.DocumentID == documentID {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].VersionNumber != entries[j].VersionNumber {
			return entries[i].VersionNumber > entries[j].VersionNumber
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (f *fakeVersionRepo) MaxVersionNumber(ctx context.Context, documentID string) (int, error) {
	max := 0
	for _, entry := range f.entries {
		if entry.DocumentID == documentID && entry.VersionNumber > max {
			max = entry.VersionNumber
		}
	}
	return max, nil
}

// fakeActivityRepo is an in-memory activity log
type fakeActivityRepo struct {
	entries []models.ActivityEntry
	listErr error
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (f *fakeActivityRepo) Create(ctx context.Context, entry *models.ActivityEntry) error {
	entry.ID = fmt.Sprintf("act-%d", len(f.entries)+1)
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.ActivityEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	entries := []models.ActivityEntry{}
	for _, entry := range f.entries {
		if entry.EntityType == entityType && entry.EntityID == entityID {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	return entries, nil
}

func (f *fakeActivityRepo) actions() []string {
	actions := make([]string, len(f.entries))
	for i, entry := range f.entries {
		actions[i] = entry.Action
	}
	return actions
}

// fakeFeed records pushes per project
type fakeFeed struct {
	items   map[string][]models.FeedItem
	pushErr error
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{items: map[string][]models.FeedItem{}}
}

func (f *fakeFeed) Push(ctx context.Context, projectID string, item *models.FeedItem) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.items[projectID] = append([]models.FeedItem{*item}, f.items[projectID]...)
	return nil
}

func (f *fakeFeed) Recent(ctx context.Context, projectID string, limit int) ([]models.FeedItem, error) {
	items := f.items[projectID]
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]models.FeedItem, len(items))
	copy(out, items)
	return out, nil
}

// fakeProfileRepo resolves display names, optionally failing every lookup
type fakeProfileRepo struct {
	profiles map[string]models.Profile
	err      error
}

func newFakeProfileRepo(profiles ...models.Profile) *fakeProfileRepo {
	m := map[string]models.Profile{}
	for _, p := range profiles {
		m[p.ID] = p
	}
	return &fakeProfileRepo{profiles: m}
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (f *fakeProfileRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]models.Profile{}
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// fakeTxManager runs the function directly; the fakes mutate shared state
// so per-step assertions still hold
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

var errFeedDown = errors.New("feed down")

// fixture wires every fake together around one seeded document
type fixture struct {
	docs     *fakeDocumentRepo
	versions *fakeVersionRepo
	activity *fakeActivityRepo
	profiles *fakeProfileRepo
	feed     *fakeFeed
	blobs    *blob.MemoryStore
}

func newFixture() *fixture {
	return &fixture{
		docs:     newFakeDocumentRepo(),
		versions: newFakeVersionRepo(),
		activity: newFakeActivityRepo(),
		profiles: newFakeProfileRepo(),
		feed:     newFakeFeed(),
		blobs:    blob.NewMemoryStore(),
	}
}
