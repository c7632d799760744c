package service

import (
	"context"
	"errors"
	"testing"

	"github.com/chronosvault/chronosvault/internal/model"
)

// fakeDiaryStore is an in-memory DiaryStore for tests.
type fakeDiaryStore struct {
	entries []*model.DiaryEntry
}

func (f *fakeDiaryStore) CreateDiaryEntry(_ context.Context, entry *model.DiaryEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeDiaryStore) ListDiaryEntriesByOwner(_ context.Context, ownerID string) ([]*model.DiaryEntry, error) {
	var out []*model.DiaryEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].OwnerID == ownerID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func TestAppend_EmptyContent(t *testing.T) {
	store := &fakeDiaryStore{}
	svc := NewDiaryService(store, fixedClock(t, "2024-06-15T12:00:00Z"), nil)

	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"newlines", "\n\t\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Append(context.Background(), "owner-1", test.content)
			if !errors.Is(err, ErrEmptyContent) {
				t.Fatalf("expected ErrEmptyContent, got %v", err)
			}
			if len(store.entries) != 0 {
				t.Fatal("blank content must not create an entry")
			}
		})
	}
}

func TestAppend_Valid(t *testing.T) {
	store := &fakeDiaryStore{}
	svc := NewDiaryService(store, fixedClock(t, "2024-06-15T12:00:00Z"), nil)

	entry, err := svc.Append(context.Background(), "owner-1", "a quiet day")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if entry.ID == "" {
		t.Error("expected a generated entry ID")
	}
	if entry.Content != "a quiet day" {
		t.Errorf("content = %q, want original content preserved", entry.Content)
	}
	if want := mustParse(t, "2024-06-15T12:00:00Z"); !entry.PostedAt.Equal(want) {
		t.Errorf("posted_at = %v, want clock instant %v", entry.PostedAt, want)
	}
	if len(store.entries) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(store.entries))
	}
}

func TestList_OwnerScoped(t *testing.T) {
	store := &fakeDiaryStore{}
	svc := NewDiaryService(store, fixedClock(t, "2024-06-15T12:00:00Z"), nil)

	if _, err := svc.Append(context.Background(), "owner-1", "mine"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := svc.Append(context.Background(), "owner-2", "theirs"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	entries, err := svc.List(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 1 || entries[0].Content != "mine" {
		t.Errorf("list returned %d entries, want only the owner's 1", len(entries))
	}
}
