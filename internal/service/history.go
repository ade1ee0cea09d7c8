package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"storea/internal/config"
	"storea/internal/domain/models"
	"storea/internal/domain/repositories"
	"storea/internal/domain/services"
)

// historyService implements the HistoryService interface
type historyService struct {
	docRepo      repositories.DocumentRepository
	versionRepo  repositories.VersionRepository
	activityRepo repositories.ActivityRepository
	profileRepo  repositories.ProfileRepository
	feed         repositories.ActivityFeed
	logger       *slog.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(
	docRepo repositories.DocumentRepository,
	versionRepo repositories.VersionRepository,
	activityRepo repositories.ActivityRepository,
	profileRepo repositories.ProfileRepository,
	feed repositories.ActivityFeed,
	logger *slog.Logger,
) services.HistoryService {
	return &historyService{
		docRepo:      docRepo,
		versionRepo:  versionRepo,
		activityRepo: activityRepo,
		profileRepo:  profileRepo,
		feed:         feed,
		logger:       logger,
	}
}

// GetDocumentHistory merges the document row, its version ledger and its
// activity trail into one timeline, newest first. All three fetches must
// succeed; a partial timeline would silently misrepresent the record.
func (s *historyService) GetDocumentHistory(ctx context.Context, documentID string) ([]models.HistoryItem, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	versions, err := s.versionRepo.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load version ledger: %w", err)
	}

	activities, err := s.activityRepo.ListByEntity(ctx, models.EntityTypeDocument, documentID)
	if err != nil {
		return nil, fmt.Errorf("load activity trail: %w", err)
	}

	names := s.resolveNames(ctx, doc, versions, activities)
	return buildHistory(doc, versions, activities, names), nil
}

// GetDocumentRevisions returns the current document state plus every ledger
// entry, highest version first with the current state leading its number.
func (s *historyService) GetDocumentRevisions(ctx context.Context, documentID string) ([]models.DocumentRevision, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	versions, err := s.versionRepo.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load version ledger: %w", err)
	}

	names := s.resolveNames(ctx, doc, versions, nil)

	revisions := make([]models.DocumentRevision, 0, len(versions)+1)
	revisions = append(revisions, models.DocumentRevision{
		ID:            doc.ID,
		VersionNumber: doc.Version,
		FilePath:      doc.FilePath,
		FileSize:      doc.FileSize,
		UploadedBy:    doc.UploadedBy,
		UploaderName:  displayName(names, doc.UploadedBy),
		CreatedAt:     doc.UpdatedAt,
		IsCurrent:     true,
	})
	for _, v := range versions {
		revisions = append(revisions, models.DocumentRevision{
			ID:             v.ID,
			VersionNumber:  v.VersionNumber,
			FilePath:       v.FilePath,
			FileSize:       v.FileSize,
			UploadedBy:     v.UploadedBy,
			UploaderName:   displayName(names, v.UploadedBy),
			ChangesSummary: v.ChangesSummary,
			CreatedAt:      v.CreatedAt,
			IsCurrent:      false,
		})
	}

	sort.SliceStable(revisions, func(i, j int) bool {
		if revisions[i].VersionNumber != revisions[j].VersionNumber {
			return revisions[i].VersionNumber > revisions[j].VersionNumber
		}
		if revisions[i].IsCurrent != revisions[j].IsCurrent {
			return revisions[i].IsCurrent
		}
		return revisions[i].CreatedAt.After(revisions[j].CreatedAt)
	})

	return revisions, nil
}

// GetRecentProjectActivity reads the cached dashboard feed
func (s *historyService) GetRecentProjectActivity(ctx context.Context, projectID string, limit int) ([]models.FeedItem, error) {
	if limit <= 0 || limit > config.RecentActivityFeedSize {
		limit = config.RecentActivityFeedSize
	}
	return s.feed.Recent(ctx, projectID, limit)
}

// resolveNames bulk-resolves the display names of every actor referenced by
// the inputs. A failed lookup degrades to an empty map: each entry then
// falls back to "Unknown User" rather than failing the read.
func (s *historyService) resolveNames(ctx context.Context, doc *models.Document, versions []models.DocumentVersion, activities []models.ActivityEntry) map[string]models.Profile {
	seen := map[string]bool{}
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	add(doc.UploadedBy)
	for _, v := range versions {
		add(v.UploadedBy)
	}
	for _, a := range activities {
		add(a.UserID)
	}

	if len(ids) == 0 {
		return map[string]models.Profile{}
	}

	names, err := s.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("resolve actor names", "document_id", doc.ID, "error", err)
		return map[string]models.Profile{}
	}
	return names
}

// displayName returns the actor's full name, or the unknown-user fallback
func displayName(names map[string]models.Profile, userID string) string {
	if p, ok := names[userID]; ok && p.FullName != "" {
		return p.FullName
	}
	return models.UnknownUserName
}

// buildHistory is the pure merge behind GetDocumentHistory. Sources map to
// item types as follows:
//
//   - the document row yields the single "created" item
//   - ledger entries yield "version_created" and "archived" items; the
//     initial-upload entry is skipped because the created item covers it
//   - activity entries yield everything else; version_created and archived
//     actions are skipped because the ledger is authoritative for those
func buildHistory(doc *models.Document, versions []models.DocumentVersion, activities []models.ActivityEntry, names map[string]models.Profile) []models.HistoryItem {
	items := make([]models.HistoryItem, 0, len(versions)+len(activities)+1)

	items = append(items, models.HistoryItem{
		ID:        doc.ID,
		Type:      models.HistoryTypeCreated,
		Timestamp: doc.CreatedAt,
		UserName:  displayName(names, doc.UploadedBy),
		UserID:    doc.UploadedBy,
		Details:   fmt.Sprintf("%s created", doc.Name),
	})

	for _, v := range versions {
		v := v
		summary := ""
		if v.ChangesSummary != nil {
			summary = *v.ChangesSummary
		}

		switch {
		case v.VersionNumber == 1 && summary == summaryInitialUpload:
			continue
		case summary == summaryArchived:
			items = append(items, models.HistoryItem{
				ID:        v.ID,
				Type:      models.HistoryTypeArchived,
				Timestamp: v.CreatedAt,
				UserName:  displayName(names, v.UploadedBy),
				UserID:    v.UploadedBy,
				Details:   fmt.Sprintf("Version %d archived", v.VersionNumber),
				Version:   &v.VersionNumber,
			})
		default:
			details := summary
			if details == "" {
				details = fmt.Sprintf("Version %d uploaded", v.VersionNumber)
			}
			items = append(items, models.HistoryItem{
				ID:        v.ID,
				Type:      models.HistoryTypeVersionCreated,
				Timestamp: v.CreatedAt,
				UserName:  displayName(names, v.UploadedBy),
				UserID:    v.UploadedBy,
				Details:   details,
				Version:   &v.VersionNumber,
			})
		}
	}

	for _, a := range activities {
		switch a.Action {
		case models.ActionVersionCreated, models.ActionArchived, models.ActionUploaded:
			// Covered by ledger entries and the created item
			continue
		}
		items = append(items, models.HistoryItem{
			ID:        a.ID,
			Type:      a.Action,
			Timestamp: a.CreatedAt,
			UserName:  displayName(names, a.UserID),
			UserID:    a.UserID,
			Details:   a.Description,
			Metadata:  a.Metadata,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})

	return items
}
