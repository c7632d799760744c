package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chronosvault/chronosvault/internal/auth"
	"github.com/chronosvault/chronosvault/internal/handler/dto"
	"github.com/chronosvault/chronosvault/internal/service"
)

// CapsuleHandler handles HTTP requests for capsule operations.
type CapsuleHandler struct {
	svc    *service.CapsuleService
	logger *slog.Logger
}

// NewCapsuleHandler creates a new CapsuleHandler.
func NewCapsuleHandler(svc *service.CapsuleService, logger *slog.Logger) *CapsuleHandler {
	return &CapsuleHandler{
		svc:    svc,
		logger: logger,
	}
}

// Timeline handles GET /api/v1/capsules.
func (h *CapsuleHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerFromContext(r.Context())

	timeline, err := h.svc.Timeline(r.Context(), ownerID)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTimelineResponse(timeline))
}

// History handles GET /api/v1/capsules/history.
func (h *CapsuleHandler) History(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerFromContext(r.Context())

	history, err := h.svc.History(r.Context(), ownerID)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToHistoryResponse(history))
}

// Bury handles POST /api/v1/capsules.
func (h *CapsuleHandler) Bury(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerFromContext(r.Context())

	var req dto.BuryCapsuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	capsule, err := h.svc.Bury(r.Context(), ownerID, req.Message, req.UnlockDate)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	h.logger.Info("capsule_buried",
		"capsule_id", capsule.ID,
		"unlock_date", req.UnlockDate,
	)

	writeJSON(w, http.StatusCreated, dto.ToCapsuleResponse(capsule))
}

// Delete handles DELETE /api/v1/capsules/{id}.
// A missing or foreign id succeeds with no effect; the response never
// reveals whether the id exists under another owner.
func (h *CapsuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Capsule ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	h.logger.Info("capsule_deleted", "capsule_id", id)

	w.WriteHeader(http.StatusNoContent)
}
