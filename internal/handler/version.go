package handler

import (
	"log/slog"
	"net/http"

	"storea/internal/config"
	"storea/internal/domain/services"
	"storea/internal/httputil"
)

// VersionHandler handles version HTTP requests
type VersionHandler struct {
	versionService services.VersionService
	logger         *slog.Logger
}

// NewVersionHandler creates a new version handler
func NewVersionHandler(versionService services.VersionService, logger *slog.Logger) *VersionHandler {
	return &VersionHandler{
		versionService: versionService,
		logger:         logger,
	}
}

// CreateVersion uploads a new revision of a document
// POST /api/documents/{id}/versions (multipart: file, changes_summary)
func (h *VersionHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	version, err := h.versionService.CreateVersion(r.Context(), &services.CreateVersionRequest{
		DocumentID:     id,
		UserID:         userID,
		FileName:       header.Filename,
		File:           file,
		Size:           header.Size,
		ChangesSummary: r.FormValue("changes_summary"),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, version)
}

// ArchiveVersion snapshots the document's current state into the ledger
// POST /api/documents/{id}/archive
func (h *VersionHandler) ArchiveVersion(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	version, err := h.versionService.ArchiveCurrentVersion(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, version)
}

// RevertVersion restores a previous version as the document's current state
// POST /api/documents/{id}/revert
func (h *VersionHandler) RevertVersion(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	var req services.RevertRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.DocumentID = id
	req.UserID = userID

	doc, err := h.versionService.RevertToVersion(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}
