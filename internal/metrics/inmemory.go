package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot is a point-in-time copy of every counter, safe to read
// while recording continues.
type Snapshot struct {
	RedirectCacheHits       uint64
	RedirectCacheMisses     uint64
	RedirectDurationCount   uint64
	RedirectDurationTotalNs int64
	ClicksRecorded          uint64
	ClickRecordFailures     uint64
	LinksCreated            uint64
	LinksDeleted            uint64
	FunnelReportCount       uint64
	FunnelReportTotalNs     int64
	DeepViewReportCount     uint64
	DeepViewReportTotalNs   int64
}

// InMemoryRecorder keeps counters in process memory using atomics.
// One instance lives for the life of the server.
type InMemoryRecorder struct {
	redirectCacheHits       uint64
	redirectCacheMisses     uint64
	redirectDurationCount   uint64
	redirectDurationTotalNs int64
	clicksRecorded          uint64
	clickRecordFailures     uint64
	linksCreated            uint64
	linksDeleted            uint64
	funnelReportCount       uint64
	funnelReportTotalNs     int64
	deepViewReportCount     uint64
	deepViewReportTotalNs   int64
}

// NewInMemory returns an empty in-process recorder.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot reads all counters atomically, one at a time. Counters
// incremented mid-read may straddle the snapshot; totals stay exact.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		RedirectCacheHits:       atomic.LoadUint64(&m.redirectCacheHits),
		RedirectCacheMisses:     atomic.LoadUint64(&m.redirectCacheMisses),
		RedirectDurationCount:   atomic.LoadUint64(&m.redirectDurationCount),
		RedirectDurationTotalNs: atomic.LoadInt64(&m.redirectDurationTotalNs),
		ClicksRecorded:          atomic.LoadUint64(&m.clicksRecorded),
		ClickRecordFailures:     atomic.LoadUint64(&m.clickRecordFailures),
		LinksCreated:            atomic.LoadUint64(&m.linksCreated),
		LinksDeleted:            atomic.LoadUint64(&m.linksDeleted),
		FunnelReportCount:       atomic.LoadUint64(&m.funnelReportCount),
		FunnelReportTotalNs:     atomic.LoadInt64(&m.funnelReportTotalNs),
		DeepViewReportCount:     atomic.LoadUint64(&m.deepViewReportCount),
		DeepViewReportTotalNs:   atomic.LoadInt64(&m.deepViewReportTotalNs),
	}
}

// IncRedirectCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncRedirectCacheHit() {
	atomic.AddUint64(&m.redirectCacheHits, 1)
}

// IncRedirectCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncRedirectCacheMiss() {
	atomic.AddUint64(&m.redirectCacheMisses, 1)
}

// ObserveRedirectDuration accumulates redirect latency as a running
// count and total.
func (m *InMemoryRecorder) ObserveRedirectDuration(d time.Duration) {
	atomic.AddUint64(&m.redirectDurationCount, 1)
	atomic.AddInt64(&m.redirectDurationTotalNs, d.Nanoseconds())
}

// IncClickRecorded increments the recorded-click counter.
func (m *InMemoryRecorder) IncClickRecorded() {
	atomic.AddUint64(&m.clicksRecorded, 1)
}

// IncClickRecordFailed increments the failed click-write counter.
func (m *InMemoryRecorder) IncClickRecordFailed() {
	atomic.AddUint64(&m.clickRecordFailures, 1)
}

// IncLinkCreated increments the link created counter.
func (m *InMemoryRecorder) IncLinkCreated() {
	atomic.AddUint64(&m.linksCreated, 1)
}

// IncLinkDeleted increments the link deleted counter.
func (m *InMemoryRecorder) IncLinkDeleted() {
	atomic.AddUint64(&m.linksDeleted, 1)
}

// ObserveReportDuration records report duration by kind.
func (m *InMemoryRecorder) ObserveReportDuration(report string, d time.Duration) {
	switch report {
	case ReportDeepView:
		atomic.AddUint64(&m.deepViewReportCount, 1)
		atomic.AddInt64(&m.deepViewReportTotalNs, d.Nanoseconds())
	default:
		atomic.AddUint64(&m.funnelReportCount, 1)
		atomic.AddInt64(&m.funnelReportTotalNs, d.Nanoseconds())
	}
}
