package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chronosvault/chronosvault/internal/clock"
	"github.com/chronosvault/chronosvault/internal/handler/dto"
	"github.com/chronosvault/chronosvault/internal/model"
	"github.com/chronosvault/chronosvault/internal/service"
	"github.com/chronosvault/chronosvault/internal/testutil"
)

// memDiaryStore is an in-memory diary store for handler tests.
type memDiaryStore struct {
	entries []*model.DiaryEntry
}

func (m *memDiaryStore) CreateDiaryEntry(_ context.Context, entry *model.DiaryEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memDiaryStore) ListDiaryEntriesByOwner(_ context.Context, ownerID string) ([]*model.DiaryEntry, error) {
	var out []*model.DiaryEntry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].OwnerID == ownerID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

func newDiaryFixture(t *testing.T) (*DiaryHandler, *memDiaryStore) {
	t.Helper()
	store := &memDiaryStore{}
	svc := service.NewDiaryService(store, clock.Fixed{Instant: testInstant(t)}, nil)
	return NewDiaryHandler(svc, testutil.DiscardLogger()), store
}

func TestDiaryHandler_Append(t *testing.T) {
	h, store := newDiaryFixture(t)

	req := authedRequest(http.MethodPost, "/api/v1/diary", `{"content":"a quiet day"}`, "owner-1")
	rec := httptest.NewRecorder()

	h.Append(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response dto.EntryResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Content != "a quiet day" {
		t.Errorf("content = %q, want original content", response.Content)
	}
	if len(store.entries) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(store.entries))
	}
}

// A blank submission is not an error to the caller; it just does nothing.
func TestDiaryHandler_Append_BlankIsSilentNoop(t *testing.T) {
	h, store := newDiaryFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty", `{"content":""}`},
		{"whitespace", `{"content":"   \n"}`},
		{"missing_field", `{}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/api/v1/diary", test.body, "owner-1")
			rec := httptest.NewRecorder()

			h.Append(rec, req)

			if rec.Code != http.StatusNoContent {
				t.Fatalf("expected status 204, got %d: %s", rec.Code, rec.Body.String())
			}
			if len(store.entries) != 0 {
				t.Error("blank submission must not create an entry")
			}
		})
	}
}

func TestDiaryHandler_List(t *testing.T) {
	h, store := newDiaryFixture(t)
	now := testInstant(t)

	store.entries = []*model.DiaryEntry{
		{ID: "e-1", OwnerID: "owner-1", Content: "first", PostedAt: now.AddDate(0, 0, -1)},
		{ID: "e-2", OwnerID: "owner-1", Content: "second", PostedAt: now},
		{ID: "e-3", OwnerID: "owner-2", Content: "foreign", PostedAt: now},
	}

	req := authedRequest(http.MethodGet, "/api/v1/diary", "", "owner-1")
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response dto.DiaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Entries) != 2 {
		t.Fatalf("got %d entries, want the owner's 2", len(response.Entries))
	}
	// Newest first.
	if response.Entries[0].ID != "e-2" {
		t.Errorf("first entry = %s, want e-2 (newest)", response.Entries[0].ID)
	}
}
