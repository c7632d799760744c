package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chronosvault/chronosvault/internal/auth"
	"github.com/chronosvault/chronosvault/internal/clock"
	"github.com/chronosvault/chronosvault/internal/handler/dto"
	"github.com/chronosvault/chronosvault/internal/model"
	"github.com/chronosvault/chronosvault/internal/repository"
)

// AvatarUploader stores avatar objects. Implemented by *storage.AvatarStore.
type AvatarUploader interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
}

// ProfileStore is the persistence surface the profile endpoints need.
// Implemented by *repository.Repository.
type ProfileStore interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	UpdateUserAvatar(ctx context.Context, userID, avatarRef string) error
	CountCapsulesByOwner(ctx context.Context, ownerID string) (int64, error)
}

// allowedAvatarTypes maps accepted file extensions to their content type.
var allowedAvatarTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ProfileHandler handles HTTP requests for the user profile.
type ProfileHandler struct {
	avatars       AvatarUploader
	store         ProfileStore
	maxAvatarSize int64
	clock         clock.Clock
	logger        *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(avatars AvatarUploader, store ProfileStore, maxAvatarSize int64, clk clock.Clock, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		avatars:       avatars,
		store:         store,
		maxAvatarSize: maxAvatarSize,
		clock:         clk,
		logger:        logger,
	}
}

// Me handles GET /api/v1/profile.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerFromContext(r.Context())

	user, err := h.store.GetUserByID(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Session outlived the account.
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing session token")
			return
		}
		h.logger.Error("profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	count, err := h.store.CountCapsulesByOwner(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("capsule count failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProfileResponse(user, count))
}

// UploadAvatar handles POST /api/v1/profile/avatar.
// Expects a multipart form with an "avatar" file part.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxAvatarSize)
	if err := r.ParseMultipartForm(h.maxAvatarSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "AVATAR_TOO_LARGE",
			fmt.Sprintf("Avatar must be at most %d bytes", h.maxAvatarSize))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_FILE", "An avatar file part is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedAvatarTypes[ext]
	if !ok {
		writeError(w, http.StatusBadRequest, "UNSUPPORTED_TYPE", "Avatar must be png, jpg, jpeg, gif or webp")
		return
	}

	// Remember the current avatar so the old object can be cleaned up
	// once the replacement is in place.
	var previousRef string
	if user, err := h.store.GetUserByID(r.Context(), ownerID); err == nil {
		previousRef = user.AvatarRef
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		h.logger.Warn("previous avatar lookup failed", "user_id", ownerID, "error", err)
	}

	key := fmt.Sprintf("avatars/%s/%d%s", ownerID, h.clock.Now().UnixNano(), ext)

	if err := h.avatars.Put(r.Context(), key, file, header.Size, contentType); err != nil {
		h.logger.Error("avatar upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "UPLOAD_FAILED", "Could not store the avatar")
		return
	}

	if err := h.store.UpdateUserAvatar(r.Context(), ownerID, key); err != nil {
		h.logger.Error("avatar reference update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "UPLOAD_FAILED", "Could not store the avatar")
		return
	}

	if previousRef != "" && previousRef != key {
		// Best effort: a stale object is not worth failing the upload over.
		if err := h.avatars.Remove(r.Context(), previousRef); err != nil {
			h.logger.Warn("stale avatar cleanup failed", "key", previousRef, "error", err)
		}
	}

	h.logger.Info("avatar_uploaded", "user_id", ownerID, "key", key)

	writeJSON(w, http.StatusOK, dto.AvatarResponse{AvatarRef: key})
}
