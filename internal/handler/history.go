package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storea/internal/domain/services"
	"storea/internal/httputil"
)

// HistoryHandler handles history and revision HTTP requests
type HistoryHandler struct {
	historyService services.HistoryService
	logger         *slog.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService services.HistoryService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
		logger:         logger,
	}
}

// GetHistory returns the document's merged activity timeline
// GET /api/documents/{id}/history
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	items, err := h.historyService.GetDocumentHistory(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// GetRevisions returns the document's version list, current state first
// GET /api/documents/{id}/revisions
func (h *HistoryHandler) GetRevisions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	revisions, err := h.historyService.GetDocumentRevisions(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, revisions)
}

// GetRecentActivity returns the project's cached activity feed
// GET /api/projects/{id}/activity?limit=N
func (h *HistoryHandler) GetRecentActivity(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	items, err := h.historyService.GetRecentProjectActivity(r.Context(), projectID, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}
