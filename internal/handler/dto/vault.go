// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/chronosvault/chronosvault/internal/model"
)

// BuryCapsuleRequest represents the request body for sealing a capsule.
type BuryCapsuleRequest struct {
	Message    string `json:"message"`
	UnlockDate string `json:"unlock_date"` // YYYY-MM-DD
}

// CapsuleResponse represents a capsule in API responses.
type CapsuleResponse struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	UnlockDate string    `json:"unlock_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// TimelineResponse represents the partitioned capsule view.
type TimelineResponse struct {
	Pending []CapsuleResponse `json:"pending"`
	Today   []CapsuleResponse `json:"today"`
	History []CapsuleResponse `json:"history"`
}

// HistoryResponse represents the unlocked-capsules view.
type HistoryResponse struct {
	History []CapsuleResponse `json:"history"`
}

// AppendEntryRequest represents the request body for a diary entry.
type AppendEntryRequest struct {
	Content string `json:"content"`
}

// EntryResponse represents a diary entry in API responses.
type EntryResponse struct {
	ID       string    `json:"id"`
	Content  string    `json:"content"`
	PostedAt time.Time `json:"posted_at"`
}

// DiaryResponse represents the diary listing, newest first.
type DiaryResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// InsightResponse carries the transient commentary for one entry.
type InsightResponse struct {
	EntryID string `json:"entry_id"`
	Insight string `json:"insight"`
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Handle    string    `json:"handle"`
	AvatarRef string    `json:"avatar_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse carries a freshly issued bearer token.
type SessionResponse struct {
	Token string `json:"token"`
}

// ProfileResponse represents the authenticated user's profile view.
type ProfileResponse struct {
	ID           string    `json:"id"`
	Handle       string    `json:"handle"`
	AvatarRef    string    `json:"avatar_ref,omitempty"`
	CapsuleCount int64     `json:"capsule_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// AvatarResponse confirms an avatar upload.
type AvatarResponse struct {
	AvatarRef string `json:"avatar_ref"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToCapsuleResponse converts a Capsule model to its DTO.
func ToCapsuleResponse(capsule *model.Capsule) CapsuleResponse {
	return CapsuleResponse{
		ID:         capsule.ID,
		Message:    capsule.Message,
		UnlockDate: capsule.UnlockAt.Format(model.UnlockDateLayout),
		CreatedAt:  capsule.CreatedAt,
	}
}

// ToTimelineResponse converts a Timeline to its DTO. Buckets are always
// present in the JSON, empty or not.
func ToTimelineResponse(timeline *model.Timeline) *TimelineResponse {
	return &TimelineResponse{
		Pending: toCapsuleResponses(timeline.Pending),
		Today:   toCapsuleResponses(timeline.Today),
		History: toCapsuleResponses(timeline.History),
	}
}

// ToHistoryResponse converts the history bucket to its DTO.
func ToHistoryResponse(capsules []*model.Capsule) *HistoryResponse {
	return &HistoryResponse{History: toCapsuleResponses(capsules)}
}

func toCapsuleResponses(capsules []*model.Capsule) []CapsuleResponse {
	responses := make([]CapsuleResponse, len(capsules))
	for i, capsule := range capsules {
		responses[i] = ToCapsuleResponse(capsule)
	}
	return responses
}

// ToEntryResponse converts a DiaryEntry model to its DTO.
func ToEntryResponse(entry *model.DiaryEntry) EntryResponse {
	return EntryResponse{
		ID:       entry.ID,
		Content:  entry.Content,
		PostedAt: entry.PostedAt,
	}
}

// ToDiaryResponse converts a slice of entries to the listing DTO.
func ToDiaryResponse(entries []*model.DiaryEntry) *DiaryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToEntryResponse(entry)
	}
	return &DiaryResponse{Entries: responses}
}

// ToProfileResponse converts a User model plus capsule count to the
// profile DTO.
func ToProfileResponse(user *model.User, capsuleCount int64) *ProfileResponse {
	return &ProfileResponse{
		ID:           user.ID,
		Handle:       user.Handle,
		AvatarRef:    user.AvatarRef,
		CapsuleCount: capsuleCount,
		CreatedAt:    user.CreatedAt,
	}
}

// ToUserResponse converts a User model to its DTO. The password hash
// never crosses this boundary.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Handle:    user.Handle,
		AvatarRef: user.AvatarRef,
		CreatedAt: user.CreatedAt,
	}
}
