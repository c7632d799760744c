package handler

import (
	"fmt"
	"net/http"

	"github.com/chronosvault/chronosvault/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "chronosvault_capsules_buried_total %d\n", snap.CapsulesBuried)
	writeMetric(w, "chronosvault_capsules_deleted_total %d\n", snap.CapsulesDeleted)

	writeMetric(w, "chronosvault_diary_entries_posted_total %d\n", snap.DiaryEntriesPosted)

	writeMetric(w, "chronosvault_insights_requested_total %d\n", snap.InsightsRequested)
	writeMetric(w, "chronosvault_insights_failed_total %d\n", snap.InsightsFailed)
	writeMetric(w, "chronosvault_insight_duration_seconds_count %d\n", snap.InsightDurationCount)
	writeMetric(w, "chronosvault_insight_duration_seconds_sum %.6f\n", float64(snap.InsightDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
