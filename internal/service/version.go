package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storea/internal/blob"
	"storea/internal/config"
	"storea/internal/domain"
	"storea/internal/domain/models"
	"storea/internal/domain/repositories"
	"storea/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// versionService implements the VersionService interface
type versionService struct {
	docRepo      repositories.DocumentRepository
	versionRepo  repositories.VersionRepository
	activityRepo repositories.ActivityRepository
	feed         repositories.ActivityFeed
	blobs        blob.Store
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewVersionService creates a new version service
func NewVersionService(
	docRepo repositories.DocumentRepository,
	versionRepo repositories.VersionRepository,
	activityRepo repositories.ActivityRepository,
	feed repositories.ActivityFeed,
	blobs blob.Store,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.VersionService {
	return &versionService{
		docRepo:      docRepo,
		versionRepo:  versionRepo,
		activityRepo: activityRepo,
		feed:         feed,
		blobs:        blobs,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateVersion stores the upload as the document's next version. The next
// number comes from the ledger's maximum, not the document's own counter,
// so numbers never collide after a revert lowered the counter. The ledger
// append and the pointer move commit together; the compare-and-swap on the
// pointer rejects concurrent writers, rolling back the ledger entry with it.
func (s *versionService) CreateVersion(ctx context.Context, req *services.CreateVersionRequest) (*models.DocumentVersion, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.DocumentID, validation.Required),
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.FileName, validation.Required),
		validation.Field(&req.Size,
			validation.Required,
			validation.Min(int64(1)),
			validation.Max(int64(config.MaxUploadBytes)),
		),
		validation.Field(&req.ChangesSummary, validation.Length(0, config.MaxChangesSummaryLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.File == nil {
		return nil, fmt.Errorf("%w: file is required", domain.ErrValidation)
	}

	doc, err := s.docRepo.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	maxLedger, err := s.versionRepo.MaxVersionNumber(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	next := maxLedger + 1
	if doc.Version >= next {
		next = doc.Version + 1
	}

	filePath := blob.VersionPath(doc.ID, next, req.FileName)
	if err := s.blobs.Put(ctx, filePath, req.File, req.Size); err != nil {
		return nil, fmt.Errorf("store version content: %w", err)
	}

	now := time.Now()
	entry := &models.DocumentVersion{
		DocumentID:    doc.ID,
		VersionNumber: next,
		FilePath:      filePath,
		FileSize:      req.Size,
		UploadedBy:    req.UserID,
		CreatedAt:     now,
	}
	if req.ChangesSummary != "" {
		summary := req.ChangesSummary
		entry.ChangesSummary = &summary
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.versionRepo.Create(txCtx, entry); err != nil {
			return err
		}

		if err := s.docRepo.UpdateCurrentPointer(txCtx, doc.ID, doc.Version, next, filePath, req.Size); err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, &models.ActivityEntry{
			EntityType:  models.EntityTypeDocument,
			EntityID:    doc.ID,
			Action:      models.ActionVersionCreated,
			Description: fmt.Sprintf("Version %d uploaded", next),
			Metadata:    map[string]any{"version": next},
			UserID:      req.UserID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.pushFeed(ctx, doc, models.ActionVersionCreated, fmt.Sprintf("%s updated to version %d", doc.Name, next), req.UserID)

	s.logger.Info("version created",
		"document_id", doc.ID,
		"version", next,
		"size", req.Size,
	)

	return entry, nil
}

// ArchiveCurrentVersion snapshots the current pointer into the ledger
// without moving it. The archived entry reuses the current version number;
// the ledger tolerates duplicate numbers per document.
func (s *versionService) ArchiveCurrentVersion(ctx context.Context, documentID, userID string) (*models.DocumentVersion, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	var entry *models.DocumentVersion
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		entry, err = s.archiveTx(txCtx, doc, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("version archived", "document_id", doc.ID, "version", doc.Version)
	return entry, nil
}

// RevertToVersion archives the current state, then moves the current
// pointer to the target ledger entry. Both steps commit together: a failed
// archive aborts the revert, so the pre-revert content is always retrievable.
func (s *versionService) RevertToVersion(ctx context.Context, req *services.RevertRequest) (*models.Document, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.DocumentID, validation.Required),
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.VersionID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	target, err := s.versionRepo.GetByID(ctx, req.VersionID)
	if err != nil {
		return nil, err
	}
	if target.DocumentID != req.DocumentID {
		// Do not leak the entry's existence to a caller holding the
		// wrong document
		return nil, fmt.Errorf("version %s: %w", req.VersionID, domain.ErrNotFound)
	}

	doc, err := s.docRepo.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.archiveTx(txCtx, doc, req.UserID); err != nil {
			return err
		}

		if err := s.docRepo.UpdateCurrentPointer(txCtx, doc.ID, doc.Version, target.VersionNumber, target.FilePath, target.FileSize); err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, &models.ActivityEntry{
			EntityType:  models.EntityTypeDocument,
			EntityID:    doc.ID,
			Action:      models.ActionReverted,
			Description: fmt.Sprintf("Reverted to version %d", target.VersionNumber),
			Metadata: map[string]any{
				"restored_version":  target.VersionNumber,
				"source_version_id": target.ID,
			},
			UserID:    req.UserID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	reverted := *doc
	reverted.FilePath = target.FilePath
	reverted.FileSize = target.FileSize
	reverted.Version = target.VersionNumber
	reverted.UpdatedAt = now

	s.pushFeed(ctx, doc, models.ActionReverted, fmt.Sprintf("%s reverted to version %d", doc.Name, target.VersionNumber), req.UserID)

	s.logger.Info("document reverted",
		"document_id", doc.ID,
		"from_version", doc.Version,
		"to_version", target.VersionNumber,
	)

	return &reverted, nil
}

// archiveTx appends a ledger snapshot of the document's current pointer and
// the matching "archived" activity entry. Must run inside a transaction.
func (s *versionService) archiveTx(ctx context.Context, doc *models.Document, userID string) (*models.DocumentVersion, error) {
	now := time.Now()
	summary := summaryArchived
	entry := &models.DocumentVersion{
		DocumentID:     doc.ID,
		VersionNumber:  doc.Version,
		FilePath:       doc.FilePath,
		FileSize:       doc.FileSize,
		UploadedBy:     userID,
		ChangesSummary: &summary,
		CreatedAt:      now,
	}
	if err := s.versionRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	err := s.activityRepo.Create(ctx, &models.ActivityEntry{
		EntityType:  models.EntityTypeDocument,
		EntityID:    doc.ID,
		Action:      models.ActionArchived,
		Description: fmt.Sprintf("Version %d archived", doc.Version),
		Metadata:    map[string]any{"version": doc.Version},
		UserID:      userID,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// pushFeed writes to the recent-activity cache on a best-effort basis
func (s *versionService) pushFeed(ctx context.Context, doc *models.Document, action, description, userID string) {
	item := &models.FeedItem{
		DocumentID:   doc.ID,
		DocumentName: doc.Name,
		Action:       action,
		Description:  description,
		UserID:       userID,
		CreatedAt:    time.Now(),
	}
	if err := s.feed.Push(ctx, doc.ProjectID, item); err != nil {
		s.logger.Warn("push activity feed", "project_id", doc.ProjectID, "error", err)
	}
}
