package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncCapsuleBuried is a no-op.
func (n *NoopRecorder) IncCapsuleBuried() {}

// IncCapsuleDeleted is a no-op.
func (n *NoopRecorder) IncCapsuleDeleted() {}

// IncDiaryEntryPosted is a no-op.
func (n *NoopRecorder) IncDiaryEntryPosted() {}

// IncInsightRequested is a no-op.
func (n *NoopRecorder) IncInsightRequested() {}

// IncInsightFailed is a no-op.
func (n *NoopRecorder) IncInsightFailed() {}

// ObserveInsightDuration is a no-op.
func (n *NoopRecorder) ObserveInsightDuration(duration time.Duration) {}
