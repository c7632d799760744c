// Package testutil provides shared helpers for tests.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/chronosvault/chronosvault/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestCapsule creates a test capsule with sensible defaults.
func NewTestCapsule(t testing.TB, ownerID string, unlockAt time.Time) *model.Capsule {
	t.Helper()
	now := time.Now().UTC()
	return &model.Capsule{
		ID:        fmt.Sprintf("capsule-%d", now.UnixNano()),
		OwnerID:   ownerID,
		Message:   "test message",
		UnlockAt:  unlockAt,
		CreatedAt: now,
	}
}

// NewTestEntry creates a test diary entry with sensible defaults.
func NewTestEntry(t testing.TB, ownerID, content string) *model.DiaryEntry {
	t.Helper()
	now := time.Now().UTC()
	return &model.DiaryEntry{
		ID:       fmt.Sprintf("entry-%d", now.UnixNano()),
		OwnerID:  ownerID,
		Content:  content,
		PostedAt: now,
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
