package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/chronosvault/chronosvault/internal/insight"
	"github.com/chronosvault/chronosvault/internal/metrics"
	"github.com/chronosvault/chronosvault/internal/model"
	"github.com/chronosvault/chronosvault/internal/repository"
)

// EntryGetter looks up a diary entry by raw identifier.
// Implemented by *repository.Repository.
type EntryGetter interface {
	GetDiaryEntryByID(ctx context.Context, id string) (*model.DiaryEntry, error)
}

// Generator produces text from a prompt. Implemented by *insight.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// InsightService runs a diary entry through the external generative-text
// service and returns the commentary. The result is transient: it is
// handed back to the caller and never written anywhere.
type InsightService struct {
	entries EntryGetter
	gen     Generator
	timeout time.Duration
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewInsightService creates a new InsightService. The timeout bounds the
// external call; past it the invocation counts as failed.
func NewInsightService(entries EntryGetter, gen Generator, timeout time.Duration, logger *slog.Logger, recorder metrics.Recorder) *InsightService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &InsightService{
		entries: entries,
		gen:     gen,
		timeout: timeout,
		logger:  logger,
		metrics: recorder,
	}
}

// Analyze fetches the entry, re-checks that it belongs to ownerID, and
// requests reflective commentary. The entry arrives by raw id from the
// request, so ownership is verified here even though list endpoints are
// already owner-scoped. An entry that is missing or foreign yields
// ErrEntryNotFound either way; no existence leak.
//
// Any failure of the external call, timeout included, downgrades to
// ErrInsightUnavailable. The caller sees a generic degraded-mode
// message, never the underlying cause. One attempt per invocation.
func (s *InsightService) Analyze(ctx context.Context, ownerID, entryID string) (string, error) {
	entry, err := s.entries.GetDiaryEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return "", ErrEntryNotFound
		}
		return "", err
	}

	if entry.OwnerID != ownerID {
		return "", ErrEntryNotFound
	}

	s.metrics.IncInsightRequested()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.gen.Generate(callCtx, insight.MentorPrompt(entry.Content))
	s.metrics.ObserveInsightDuration(time.Since(start))

	if err != nil {
		s.metrics.IncInsightFailed()
		s.logger.Warn("insight generation failed",
			slog.String("entry_id", entryID),
			slog.String("error", err.Error()),
		)
		return "", ErrInsightUnavailable
	}

	return text, nil
}
