package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chronosvault/chronosvault/internal/auth"
	"github.com/chronosvault/chronosvault/internal/handler/dto"
	"github.com/chronosvault/chronosvault/internal/service"
)

// InsightHandler handles HTTP requests for diary insight generation.
type InsightHandler struct {
	svc    *service.InsightService
	logger *slog.Logger
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(svc *service.InsightService, logger *slog.Logger) *InsightHandler {
	return &InsightHandler{
		svc:    svc,
		logger: logger,
	}
}

// Analyze handles POST /api/v1/diary/{id}/insight.
// The commentary is transient: returned in the response and never stored.
func (h *InsightHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Entry ID is required")
		return
	}

	text, err := h.svc.Analyze(r.Context(), ownerID, id)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InsightResponse{
		EntryID: id,
		Insight: text,
	})
}
