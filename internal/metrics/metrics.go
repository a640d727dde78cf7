// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Report kinds observed by ObserveReportDuration.
const (
	ReportFunnel   = "funnel"
	ReportDeepView = "deep_view"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Redirect path metrics
	IncRedirectCacheHit()
	IncRedirectCacheMiss()
	ObserveRedirectDuration(duration time.Duration)

	// Click log metrics
	IncClickRecorded()
	IncClickRecordFailed()

	// Link management metrics
	IncLinkCreated()
	IncLinkDeleted()

	// Report metrics
	ObserveReportDuration(report string, duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
