package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronosvault/chronosvault/internal/metrics"
	"github.com/chronosvault/chronosvault/internal/model"
	"github.com/chronosvault/chronosvault/internal/repository"
	"github.com/chronosvault/chronosvault/internal/testutil"
)

// fakeEntryGetter serves a fixed set of entries by id.
type fakeEntryGetter struct {
	entries map[string]*model.DiaryEntry
}

func (f *fakeEntryGetter) GetDiaryEntryByID(_ context.Context, id string) (*model.DiaryEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, repository.ErrEntryNotFound
	}
	return entry, nil
}

// fakeGenerator scripts the external call's behavior.
type fakeGenerator struct {
	text       string
	err        error
	blockUntil time.Duration // simulate a slow remote call
	prompts    []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.blockUntil > 0 {
		select {
		case <-time.After(f.blockUntil):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func newInsightFixture(gen *fakeGenerator, timeout time.Duration) (*InsightService, *fakeEntryGetter, *metrics.InMemoryRecorder) {
	entries := &fakeEntryGetter{entries: map[string]*model.DiaryEntry{
		"entry-1": {ID: "entry-1", OwnerID: "owner-1", Content: "a quiet day"},
	}}
	recorder := metrics.NewInMemory()
	svc := NewInsightService(entries, gen, timeout, testutil.DiscardLogger(), recorder)
	return svc, entries, recorder
}

func TestAnalyze_Success(t *testing.T) {
	gen := &fakeGenerator{text: "Keep going."}
	svc, _, _ := newInsightFixture(gen, time.Second)

	text, err := svc.Analyze(context.Background(), "owner-1", "entry-1")
	require.NoError(t, err)
	assert.Equal(t, "Keep going.", text)

	// The prompt embeds the entry content.
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "a quiet day")
}

func TestAnalyze_UnknownEntry(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	svc, _, _ := newInsightFixture(gen, time.Second)

	_, err := svc.Analyze(context.Background(), "owner-1", "no-such-entry")
	require.ErrorIs(t, err, ErrEntryNotFound)

	// The external service must not be called for an unresolved entry.
	assert.Empty(t, gen.prompts)
}

func TestAnalyze_ForeignEntry(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	svc, _, _ := newInsightFixture(gen, time.Second)

	// Ownership is re-checked on the raw id; a foreign entry looks
	// exactly like a missing one.
	_, err := svc.Analyze(context.Background(), "owner-2", "entry-1")
	require.ErrorIs(t, err, ErrEntryNotFound)
	assert.Empty(t, gen.prompts)
}

func TestAnalyze_ExternalFailureDowngraded(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("TLS handshake failed: x509 something internal")}
	svc, _, recorder := newInsightFixture(gen, time.Second)

	_, err := svc.Analyze(context.Background(), "owner-1", "entry-1")

	// The caller gets the generic sentinel, never the transport error.
	require.ErrorIs(t, err, ErrInsightUnavailable)
	assert.NotContains(t, err.Error(), "x509")

	snap := recorder.Snapshot()
	assert.Equal(t, uint64(1), snap.InsightsRequested)
	assert.Equal(t, uint64(1), snap.InsightsFailed)
}

func TestAnalyze_Timeout(t *testing.T) {
	gen := &fakeGenerator{text: "too late", blockUntil: 500 * time.Millisecond}
	svc, entries, _ := newInsightFixture(gen, 20*time.Millisecond)

	before := len(entries.entries)

	_, err := svc.Analyze(context.Background(), "owner-1", "entry-1")
	require.ErrorIs(t, err, ErrInsightUnavailable)

	// One attempt, nothing persisted, no panic escaped.
	assert.Len(t, gen.prompts, 1)
	assert.Equal(t, before, len(entries.entries))
}
