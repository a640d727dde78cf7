package metrics

import "time"

// NoopRecorder discards every observation. Tests that do not assert on
// metrics pass it where a Recorder is required.
type NoopRecorder struct{}

// NewNoop returns the discarding recorder.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncRedirectCacheHit()  {}
func (n *NoopRecorder) IncRedirectCacheMiss() {}

func (n *NoopRecorder) ObserveRedirectDuration(d time.Duration) {}

func (n *NoopRecorder) IncClickRecorded()     {}
func (n *NoopRecorder) IncClickRecordFailed() {}

func (n *NoopRecorder) IncLinkCreated() {}
func (n *NoopRecorder) IncLinkDeleted() {}

func (n *NoopRecorder) ObserveReportDuration(report string, d time.Duration) {}
