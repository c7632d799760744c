package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/chronosvault/chronosvault/internal/clock"
	"github.com/chronosvault/chronosvault/internal/metrics"
	"github.com/chronosvault/chronosvault/internal/model"
)

// DiaryStore is the persistence surface the diary service needs.
// Implemented by *repository.Repository.
type DiaryStore interface {
	CreateDiaryEntry(ctx context.Context, entry *model.DiaryEntry) error
	ListDiaryEntriesByOwner(ctx context.Context, ownerID string) ([]*model.DiaryEntry, error)
}

// DiaryService handles diary entry logic.
type DiaryService struct {
	store   DiaryStore
	clock   clock.Clock
	metrics metrics.Recorder
}

// NewDiaryService creates a new DiaryService.
func NewDiaryService(store DiaryStore, clk clock.Clock, recorder metrics.Recorder) *DiaryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &DiaryService{
		store:   store,
		clock:   clk,
		metrics: recorder,
	}
}

// Append persists a new diary entry for the owner. Blank content fails
// with ErrEmptyContent and writes nothing; the HTTP layer treats that
// as a silent no-op rather than a user-facing error.
func (s *DiaryService) Append(ctx context.Context, ownerID, content string) (*model.DiaryEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	entry := &model.DiaryEntry{
		ID:       ulid.Make().String(),
		OwnerID:  ownerID,
		Content:  content,
		PostedAt: s.clock.Now(),
	}

	if err := s.store.CreateDiaryEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append diary entry: %w", err)
	}

	s.metrics.IncDiaryEntryPosted()

	return entry, nil
}

// List returns the owner's diary entries, newest first.
func (s *DiaryService) List(ctx context.Context, ownerID string) ([]*model.DiaryEntry, error) {
	return s.store.ListDiaryEntriesByOwner(ctx, ownerID)
}
