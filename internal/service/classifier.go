package service

import (
	"sort"
	"time"

	"github.com/chronosvault/chronosvault/internal/model"
)

// classify partitions a user's capsules against a reference instant.
// It is a pure function of (now, capsules): no clock reads, no store
// access, no mutation of the input slice.
//
// Buckets:
//   - pending: unlock instant strictly after now, soonest first. The
//     ascending order is a user-facing contract (countdown display).
//   - today: unlock date equals now's calendar date, regardless of
//     time-of-day.
//   - history: unlock instant at or before now, most recent first.
//
// The today and history predicates are independent: a capsule unlocking
// earlier today appears in both buckets. The main view renders both, so
// the overlap must survive classification untouched.
func classify(now time.Time, capsules []*model.Capsule) model.Timeline {
	timeline := model.Timeline{
		Pending: []*model.Capsule{},
		Today:   []*model.Capsule{},
		History: []*model.Capsule{},
	}

	for _, c := range capsules {
		if c.UnlocksOn(now) {
			timeline.Today = append(timeline.Today, c)
		}
		if c.IsPending(now) {
			timeline.Pending = append(timeline.Pending, c)
		} else {
			timeline.History = append(timeline.History, c)
		}
	}

	sort.SliceStable(timeline.Pending, func(i, j int) bool {
		return timeline.Pending[i].UnlockAt.Before(timeline.Pending[j].UnlockAt)
	})
	sort.SliceStable(timeline.History, func(i, j int) bool {
		return timeline.History[i].UnlockAt.After(timeline.History[j].UnlockAt)
	})

	return timeline
}
