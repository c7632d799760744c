package service

import (
	"testing"
	"time"

	"github.com/chronosvault/chronosvault/internal/model"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return ts
}

func capsuleAt(id string, unlockAt time.Time) *model.Capsule {
	return &model.Capsule{
		ID:       id,
		OwnerID:  "owner-1",
		Message:  "msg-" + id,
		UnlockAt: unlockAt,
	}
}

func ids(capsules []*model.Capsule) []string {
	out := make([]string, len(capsules))
	for i, c := range capsules {
		out[i] = c.ID
	}
	return out
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestClassify_Buckets(t *testing.T) {
	now := mustParse(t, "2024-06-15T12:00:00Z")

	past := capsuleAt("past", mustParse(t, "2024-06-10T00:00:00Z"))
	today := capsuleAt("today", mustParse(t, "2024-06-15T00:00:00Z"))
	future := capsuleAt("future", mustParse(t, "2024-06-20T00:00:00Z"))

	timeline := classify(now, []*model.Capsule{past, today, future})

	if got := ids(timeline.Pending); !equalIDs(got, []string{"future"}) {
		t.Errorf("pending = %v, want [future]", got)
	}
	if got := ids(timeline.Today); !equalIDs(got, []string{"today"}) {
		t.Errorf("today = %v, want [today]", got)
	}
	// History is descending, and the today capsule appears here too:
	// its 00:00 unlock time already passed noon. The overlap is part of
	// the display contract.
	if got := ids(timeline.History); !equalIDs(got, []string{"today", "past"}) {
		t.Errorf("history = %v, want [today past]", got)
	}
}

func TestClassify_PendingHistoryPartition(t *testing.T) {
	now := mustParse(t, "2024-06-15T12:00:00Z")

	tests := []struct {
		name     string
		unlockAt string
		pending  bool
	}{
		{"far_past", "2020-01-01T00:00:00Z", false},
		{"yesterday", "2024-06-14T23:59:59Z", false},
		{"earlier_today", "2024-06-15T11:59:59Z", false},
		{"exactly_now", "2024-06-15T12:00:00Z", false},
		{"later_today", "2024-06-15T12:00:01Z", true},
		{"tomorrow", "2024-06-16T00:00:00Z", true},
		{"far_future", "2030-01-01T00:00:00Z", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := capsuleAt(test.name, mustParse(t, test.unlockAt))
			timeline := classify(now, []*model.Capsule{c})

			inPending := len(timeline.Pending) == 1
			inHistory := len(timeline.History) == 1

			// Exactly one of pending/history must hold.
			if inPending == inHistory {
				t.Fatalf("capsule in pending=%v history=%v, want exactly one", inPending, inHistory)
			}
			if inPending != test.pending {
				t.Errorf("pending = %v, want %v", inPending, test.pending)
			}
		})
	}
}

func TestClassify_TodayIndependentOfTimeOfDay(t *testing.T) {
	now := mustParse(t, "2024-06-15T12:00:00Z")

	morning := capsuleAt("morning", mustParse(t, "2024-06-15T06:00:00Z"))
	evening := capsuleAt("evening", mustParse(t, "2024-06-15T22:00:00Z"))

	timeline := classify(now, []*model.Capsule{morning, evening})

	if got := ids(timeline.Today); !equalIDs(got, []string{"morning", "evening"}) {
		t.Errorf("today = %v, want both capsules regardless of time-of-day", got)
	}

	// The morning capsule is also history, the evening one also pending.
	if got := ids(timeline.History); !equalIDs(got, []string{"morning"}) {
		t.Errorf("history = %v, want [morning]", got)
	}
	if got := ids(timeline.Pending); !equalIDs(got, []string{"evening"}) {
		t.Errorf("pending = %v, want [evening]", got)
	}
}

func TestClassify_Ordering(t *testing.T) {
	now := mustParse(t, "2024-06-15T12:00:00Z")

	capsules := []*model.Capsule{
		capsuleAt("p2", mustParse(t, "2024-07-01T00:00:00Z")),
		capsuleAt("h1", mustParse(t, "2024-06-01T00:00:00Z")),
		capsuleAt("p1", mustParse(t, "2024-06-16T00:00:00Z")),
		capsuleAt("h3", mustParse(t, "2024-03-01T00:00:00Z")),
		capsuleAt("p3", mustParse(t, "2025-01-01T00:00:00Z")),
		capsuleAt("h2", mustParse(t, "2024-05-01T00:00:00Z")),
	}

	timeline := classify(now, capsules)

	// Pending ascending: soonest unlock first.
	if got := ids(timeline.Pending); !equalIDs(got, []string{"p1", "p2", "p3"}) {
		t.Errorf("pending = %v, want [p1 p2 p3]", got)
	}

	// History descending: most recently unlocked first.
	if got := ids(timeline.History); !equalIDs(got, []string{"h1", "h2", "h3"}) {
		t.Errorf("history = %v, want [h1 h2 h3]", got)
	}
}

func TestClassify_Empty(t *testing.T) {
	now := mustParse(t, "2024-06-15T12:00:00Z")

	timeline := classify(now, nil)

	if timeline.Pending == nil || timeline.Today == nil || timeline.History == nil {
		t.Error("buckets must be non-nil for rendering even when empty")
	}
	if len(timeline.Pending)+len(timeline.Today)+len(timeline.History) != 0 {
		t.Error("expected all buckets empty")
	}
}

func TestClassify_Deterministic(t *testing.T) {
	now := mustParse(t, "2024-06-15T12:00:00Z")

	capsules := []*model.Capsule{
		capsuleAt("a", mustParse(t, "2024-06-10T00:00:00Z")),
		capsuleAt("b", mustParse(t, "2024-06-15T00:00:00Z")),
		capsuleAt("c", mustParse(t, "2024-06-20T00:00:00Z")),
	}

	first := classify(now, capsules)
	second := classify(now, capsules)

	if !equalIDs(ids(first.Pending), ids(second.Pending)) ||
		!equalIDs(ids(first.Today), ids(second.Today)) ||
		!equalIDs(ids(first.History), ids(second.History)) {
		t.Error("classification must be a deterministic function of (now, capsules)")
	}
}
