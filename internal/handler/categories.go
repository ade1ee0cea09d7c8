package handler

import (
	"log/slog"
	"net/http"

	"storea/internal/categories"
	"storea/internal/httputil"
)

// CategoriesHandler serves the document category register
type CategoriesHandler struct {
	registry *categories.Registry
	logger   *slog.Logger
}

// NewCategoriesHandler creates a new categories handler
func NewCategoriesHandler(registry *categories.Registry, logger *slog.Logger) *CategoriesHandler {
	return &CategoriesHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListCategories returns every registered document category
// GET /api/categories
func (h *CategoriesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.List())
}
