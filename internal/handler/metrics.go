package handler

import (
	"fmt"
	"net/http"

	"github.com/insyte-io/linktrack/internal/metrics"
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

	writeMetric(w, "linktrack_redirect_cache_hits_total %d\n", snap.RedirectCacheHits)
	writeMetric(w, "linktrack_redirect_cache_misses_total %d\n", snap.RedirectCacheMisses)
	writeMetric(w, "linktrack_redirect_duration_seconds_count %d\n", snap.RedirectDurationCount)
	writeMetric(w, "linktrack_redirect_duration_seconds_sum %.6f\n", float64(snap.RedirectDurationTotalNs)/1e9)

	writeMetric(w, "linktrack_clicks_recorded_total %d\n", snap.ClicksRecorded)
	writeMetric(w, "linktrack_click_record_failures_total %d\n", snap.ClickRecordFailures)

	writeMetric(w, "linktrack_links_created_total %d\n", snap.LinksCreated)
	writeMetric(w, "linktrack_links_deleted_total %d\n", snap.LinksDeleted)

	writeMetric(w, "linktrack_report_duration_seconds_count{report=\"funnel\"} %d\n", snap.FunnelReportCount)
	writeMetric(w, "linktrack_report_duration_seconds_sum{report=\"funnel\"} %.6f\n", float64(snap.FunnelReportTotalNs)/1e9)
	writeMetric(w, "linktrack_report_duration_seconds_count{report=\"deep_view\"} %d\n", snap.DeepViewReportCount)
	writeMetric(w, "linktrack_report_duration_seconds_sum{report=\"deep_view\"} %.6f\n", float64(snap.DeepViewReportTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
