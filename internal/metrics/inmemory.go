package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	CapsulesBuried         uint64
	CapsulesDeleted        uint64
	DiaryEntriesPosted     uint64
	InsightsRequested      uint64
	InsightsFailed         uint64
	InsightDurationCount   uint64
	InsightDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	capsulesBuried         uint64
	capsulesDeleted        uint64
	diaryEntriesPosted     uint64
	insightsRequested      uint64
	insightsFailed         uint64
	insightDurationCount   uint64
	insightDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		CapsulesBuried:         atomic.LoadUint64(&m.capsulesBuried),
		CapsulesDeleted:        atomic.LoadUint64(&m.capsulesDeleted),
		DiaryEntriesPosted:     atomic.LoadUint64(&m.diaryEntriesPosted),
		InsightsRequested:      atomic.LoadUint64(&m.insightsRequested),
		InsightsFailed:         atomic.LoadUint64(&m.insightsFailed),
		InsightDurationCount:   atomic.LoadUint64(&m.insightDurationCount),
		InsightDurationTotalNs: atomic.LoadInt64(&m.insightDurationTotalNs),
	}
}

// IncCapsuleBuried increments the buried capsule counter.
func (m *InMemoryRecorder) IncCapsuleBuried() {
	atomic.AddUint64(&m.capsulesBuried, 1)
}

// IncCapsuleDeleted increments the deleted capsule counter.
func (m *InMemoryRecorder) IncCapsuleDeleted() {
	atomic.AddUint64(&m.capsulesDeleted, 1)
}

// IncDiaryEntryPosted increments the diary entry counter.
func (m *InMemoryRecorder) IncDiaryEntryPosted() {
	atomic.AddUint64(&m.diaryEntriesPosted, 1)
}

// IncInsightRequested increments the insight request counter.
func (m *InMemoryRecorder) IncInsightRequested() {
	atomic.AddUint64(&m.insightsRequested, 1)
}

// IncInsightFailed increments the insight failure counter.
func (m *InMemoryRecorder) IncInsightFailed() {
	atomic.AddUint64(&m.insightsFailed, 1)
}

// ObserveInsightDuration records one insight call duration.
func (m *InMemoryRecorder) ObserveInsightDuration(duration time.Duration) {
	atomic.AddUint64(&m.insightDurationCount, 1)
	atomic.AddInt64(&m.insightDurationTotalNs, duration.Nanoseconds())
}
