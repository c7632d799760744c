package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chronosvault/chronosvault/internal/auth"
	"github.com/chronosvault/chronosvault/internal/handler/dto"
	"github.com/chronosvault/chronosvault/internal/service"
)

// DiaryHandler handles HTTP requests for diary operations.
type DiaryHandler struct {
	svc    *service.DiaryService
	logger *slog.Logger
}

// NewDiaryHandler creates a new DiaryHandler.
func NewDiaryHandler(svc *service.DiaryService, logger *slog.Logger) *DiaryHandler {
	return &DiaryHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/v1/diary.
func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerFromContext(r.Context())

	entries, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDiaryResponse(entries))
}

// Append handles POST /api/v1/diary.
// Blank content is quietly dropped: the submission succeeds with 204 and
// writes nothing, mirroring how a blank form post is treated.
func (h *DiaryHandler) Append(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerFromContext(r.Context())

	var req dto.AppendEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	entry, err := h.svc.Append(r.Context(), ownerID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		handleServiceError(h.logger, w, err)
		return
	}

	h.logger.Info("diary_entry_posted", "entry_id", entry.ID)

	writeJSON(w, http.StatusCreated, dto.ToEntryResponse(entry))
}
