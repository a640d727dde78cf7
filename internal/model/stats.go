package model

import "time"

// LinkStats is the per-link funnel rollup: clicks, booked calls, closed
// deals and revenue within a date window.
type LinkStats struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	DestinationURL string    `json:"destination_url"`
	Clicks         int64     `json:"clicks"`
	BookedCalls    int64     `json:"booked_calls"`
	DealsClosed    int64     `json:"deals_closed"`
	Revenue        float64   `json:"revenue"` // 0.0 when no payments match, never null
	CreatedAt      time.Time `json:"created_at"`
}

// CallRecord is a single call row exposed in the deep view for
// caller-side display.
type CallRecord struct {
	ID     string     `json:"id"`
	Date   string     `json:"date"` // RFC 3339
	Status CallStatus `json:"status"`
	Email  string     `json:"email"`
}

// CallBreakdown groups call rows by each of the seven statuses.
type CallBreakdown struct {
	Booked      int64        `json:"booked"`
	Pending     int64        `json:"pending"`
	Confirmed   int64        `json:"confirmed"`
	Completed   int64        `json:"completed"`
	Cancelled   int64        `json:"cancelled"`
	NoShow      int64        `json:"no_show"`
	Rescheduled int64        `json:"rescheduled"`
	List        []CallRecord `json:"list"`
}

// Total returns the call count across all buckets.
func (b *CallBreakdown) Total() int64 {
	return b.Booked + b.Pending + b.Confirmed + b.Completed +
		b.Cancelled + b.NoShow + b.Rescheduled
}

// Add classifies one call into its bucket and appends it to the list.
func (b *CallBreakdown) Add(call *Call) {
	switch call.Status {
	case CallStatusBooked:
		b.Booked++
	case CallStatusPending:
		b.Pending++
	case CallStatusConfirmed:
		b.Confirmed++
	case CallStatusCompleted:
		b.Completed++
	case CallStatusCancelled:
		b.Cancelled++
	case CallStatusNoShow:
		b.NoShow++
	case CallStatusRescheduled:
		b.Rescheduled++
	}
	b.List = append(b.List, CallRecord{
		ID:     call.ID,
		Date:   call.Timestamp.Format(time.RFC3339),
		Status: call.Status,
		Email:  call.Email,
	})
}

// DealSummary is the closed-deal portion of the deep view.
type DealSummary struct {
	Closed  int64   `json:"closed"`
	Revenue float64 `json:"revenue"`
}

// VideoData is the merged video-metrics view within a deep view.
// Leads and revenue are recomputed from Call/Payment rows restricted to
// the report window, not taken from the snapshot.
type VideoData struct {
	VideoID          string  `json:"video_id"`
	Views            int64   `json:"views"`
	WatchTimeSeconds int64   `json:"watch_time_seconds"`
	Likes            int64   `json:"likes"`
	Comments         int64   `json:"comments"`
	DurationSeconds  int64   `json:"duration_seconds"`
	EngagementRate   float64 `json:"engagement_rate"`
	LastUpdated      string  `json:"last_updated"` // RFC 3339
	LeadsGenerated   int64   `json:"leads_generated"`
	Revenue          float64 `json:"revenue"`
}

// DeepView is the per-link detailed report: time-series clicks,
// call-status breakdown, deals and video metrics.
type DeepView struct {
	Title          string            `json:"title"`
	Slug           string            `json:"slug"`
	ShortURL       string            `json:"short_url"`
	Destination    string            `json:"destination"`
	CreatedAt      time.Time         `json:"created_at"`
	Views          int64             `json:"views"`
	ViewsEstimated bool              `json:"views_estimated"` // true when views is 2x clicks, not a measurement
	Clicks         int64             `json:"clicks"`
	ClicksData     []DailyClickCount `json:"clicks_data"`
	Calls          CallBreakdown     `json:"calls"`
	Deals          DealSummary       `json:"deals"`
	VideoData      *VideoData        `json:"video_data"` // nil when no snapshot exists in window
}
