package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"storea/internal/blob"
	"storea/internal/categories"
	"storea/internal/config"
	"storea/internal/domain"
	"storea/internal/domain/models"
	"storea/internal/domain/repositories"
	"storea/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Changes summaries written by the version manager itself, as opposed to
// user-supplied ones. The history merge relies on these markers.
const (
	summaryInitialUpload = "Initial upload"
	summaryArchived      = "Archived before superseding"
)

// Client-originated activity actions accepted by RecordActivity. Ledger-backed
// actions (version_created, archived, reverted) are written by the version
// manager only and rejected here.
var clientActions = map[string]bool{
	models.ActionViewed:      true,
	models.ActionDownloaded:  true,
	models.ActionShared:      true,
	models.ActionTransmitted: true,
}

// documentService implements the DocumentService interface
type documentService struct {
	docRepo      repositories.DocumentRepository
	versionRepo  repositories.VersionRepository
	activityRepo repositories.ActivityRepository
	feed         repositories.ActivityFeed
	blobs        blob.Store
	registry     *categories.Registry
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	versionRepo repositories.VersionRepository,
	activityRepo repositories.ActivityRepository,
	feed repositories.ActivityFeed,
	blobs blob.Store,
	registry *categories.Registry,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:      docRepo,
		versionRepo:  versionRepo,
		activityRepo: activityRepo,
		feed:         feed,
		blobs:        blobs,
		registry:     registry,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateDocument stores the uploaded file, then inserts the document row,
// its version-1 ledger entry and the "uploaded" activity entry in one
// transaction. The blob is written first so no database row ever points at
// content that is not durable.
func (s *documentService) CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
		),
		validation.Field(&req.FileName, validation.Required),
		validation.Field(&req.Size,
			validation.Required,
			validation.Min(int64(1)),
			validation.Max(int64(config.MaxUploadBytes)),
		),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.File == nil {
		return nil, fmt.Errorf("%w: file is required", domain.ErrValidation)
	}

	category := req.Category
	if category == "" {
		category = categories.DefaultCategory
	}
	if !s.registry.Has(category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}

	docID := uuid.NewString()
	filePath := blob.VersionPath(docID, 1, req.FileName)

	if err := s.blobs.Put(ctx, filePath, req.File, req.Size); err != nil {
		return nil, fmt.Errorf("store document content: %w", err)
	}

	now := time.Now()
	doc := &models.Document{
		ID:         docID,
		ProjectID:  req.ProjectID,
		Name:       strings.TrimSpace(req.Name),
		Category:   category,
		FilePath:   filePath,
		FileSize:   req.Size,
		UploadedBy: req.UserID,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	summary := summaryInitialUpload
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.Create(txCtx, doc); err != nil {
			return err
		}

		entry := &models.DocumentVersion{
			DocumentID:     doc.ID,
			VersionNumber:  1,
			FilePath:       filePath,
			FileSize:       req.Size,
			UploadedBy:     req.UserID,
			ChangesSummary: &summary,
			CreatedAt:      now,
		}
		if err := s.versionRepo.Create(txCtx, entry); err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, &models.ActivityEntry{
			EntityType:  models.EntityTypeDocument,
			EntityID:    doc.ID,
			Action:      models.ActionUploaded,
			Description: fmt.Sprintf("%s uploaded", doc.Name),
			UserID:      req.UserID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.pushFeed(ctx, doc, models.ActionUploaded, fmt.Sprintf("%s uploaded", doc.Name), req.UserID)

	s.logger.Info("document created",
		"id", doc.ID,
		"project_id", doc.ProjectID,
		"name", doc.Name,
		"category", doc.Category,
		"size", doc.FileSize,
	)

	return doc, nil
}

// GetDocument retrieves a document by ID
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// ListDocuments lists all documents in a project
func (s *documentService) ListDocuments(ctx context.Context, projectID string) ([]models.Document, error) {
	return s.docRepo.ListByProject(ctx, projectID)
}

// OpenCurrentFile opens the document's current content blob for reading
func (s *documentService) OpenCurrentFile(ctx context.Context, id string) (io.ReadCloser, *models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Get(ctx, doc.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open document content: %w", err)
	}

	return rc, doc, nil
}

// DeleteDocument soft-deletes a document. Ledger entries and blobs are
// retained; only the document row is hidden.
func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id, "project_id", doc.ProjectID)
	return nil
}

// RecordActivity appends a client-side event to the document's audit trail
func (s *documentService) RecordActivity(ctx context.Context, req *services.RecordActivityRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.DocumentID, validation.Required),
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Action, validation.Required),
		validation.Field(&req.Description, validation.Length(0, config.MaxChangesSummaryLength)),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !clientActions[req.Action] {
		return fmt.Errorf("%w: action %q cannot be recorded directly", domain.ErrValidation, req.Action)
	}

	doc, err := s.docRepo.GetByID(ctx, req.DocumentID)
	if err != nil {
		return err
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("%s %s", doc.Name, req.Action)
	}

	entry := &models.ActivityEntry{
		EntityType:  models.EntityTypeDocument,
		EntityID:    doc.ID,
		Action:      req.Action,
		Description: description,
		Metadata:    req.Metadata,
		UserID:      req.UserID,
		CreatedAt:   time.Now(),
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		return err
	}

	s.pushFeed(ctx, doc, req.Action, description, req.UserID)
	return nil
}

// pushFeed writes to the recent-activity cache on a best-effort basis. The
// activity log is the source of truth; a feed failure is logged, not returned.
func (s *documentService) pushFeed(ctx context.Context, doc *models.Document, action, description, userID string) {
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
