// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/chronosvault/chronosvault/internal/clock"
	"github.com/chronosvault/chronosvault/internal/metrics"
	"github.com/chronosvault/chronosvault/internal/model"
)

// Service errors.
var (
	ErrInvalidUnlockDate  = errors.New("invalid unlock date")
	ErrEmptyContent       = errors.New("empty diary content")
	ErrEntryNotFound      = errors.New("diary entry not found")
	ErrInsightUnavailable = errors.New("insight service unavailable")
	ErrHandleTaken        = errors.New("handle already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CapsuleStore is the persistence surface the capsule service needs.
// Implemented by *repository.Repository.
type CapsuleStore interface {
	CreateCapsule(ctx context.Context, capsule *model.Capsule) error
	ListCapsulesByOwner(ctx context.Context, ownerID string) ([]*model.Capsule, error)
	DeleteCapsule(ctx context.Context, ownerID, id string) error
}

// CapsuleService handles capsule lifecycle logic.
type CapsuleService struct {
	store   CapsuleStore
	clock   clock.Clock
	metrics metrics.Recorder
}

// NewCapsuleService creates a new CapsuleService.
func NewCapsuleService(store CapsuleStore, clk clock.Clock, recorder metrics.Recorder) *CapsuleService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CapsuleService{
		store:   store,
		clock:   clk,
		metrics: recorder,
	}
}

// Bury seals a new capsule for the owner. The unlock date arrives as a
// bare YYYY-MM-DD string and resolves to the start of that day in UTC.
// A date in the past is legal; the capsule simply lands in history on
// the next read. A malformed date fails with ErrInvalidUnlockDate and
// leaves the store untouched.
func (s *CapsuleService) Bury(ctx context.Context, ownerID, message, unlockDate string) (*model.Capsule, error) {
	unlockAt, err := time.ParseInLocation(model.UnlockDateLayout, unlockDate, time.UTC)
	if err != nil {
		return nil, ErrInvalidUnlockDate
	}

	capsule := &model.Capsule{
		ID:        ulid.Make().String(),
		OwnerID:   ownerID,
		Message:   message,
		UnlockAt:  unlockAt,
		CreatedAt: s.clock.Now(),
	}

	if err := s.store.CreateCapsule(ctx, capsule); err != nil {
		return nil, fmt.Errorf("failed to bury capsule: %w", err)
	}

	s.metrics.IncCapsuleBuried()

	return capsule, nil
}

// Delete removes a capsule owned by ownerID. When the capsule does not
// exist, or belongs to someone else, the call succeeds without doing
// anything: the response must not reveal whether the id exists under
// another owner.
func (s *CapsuleService) Delete(ctx context.Context, ownerID, capsuleID string) error {
	if err := s.store.DeleteCapsule(ctx, ownerID, capsuleID); err != nil {
		return fmt.Errorf("failed to delete capsule: %w", err)
	}

	s.metrics.IncCapsuleDeleted()

	return nil
}

// Timeline returns the owner's capsules partitioned into the pending,
// today and history buckets at the current instant.
func (s *CapsuleService) Timeline(ctx context.Context, ownerID string) (*model.Timeline, error) {
	capsules, err := s.store.ListCapsulesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	timeline := classify(s.clock.Now(), capsules)
	return &timeline, nil
}

// History returns only the unlocked capsules, most recent first. The
// dedicated history view applies the unlock predicate alone, without
// the today overlay of the main view.
func (s *CapsuleService) History(ctx context.Context, ownerID string) ([]*model.Capsule, error) {
	capsules, err := s.store.ListCapsulesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	timeline := classify(s.clock.Now(), capsules)
	return timeline.History, nil
}
