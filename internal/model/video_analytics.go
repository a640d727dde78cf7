package model

import "time"

// VideoAnalytics is a snapshot of platform metrics for the video behind
// a tracking link. At most the freshest snapshot per slug is read per
// report; this service never writes it on the request path.
type VideoAnalytics struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	VideoID         string    `json:"video_id"`
	Views           int64     `json:"views"`
	Likes           int64     `json:"likes"`
	Comments        int64     `json:"comments"`
	EngagementRate  float64   `json:"engagement_rate"`
	AvgViewDuration float64   `json:"avg_view_duration"` // seconds
	LastUpdated     time.Time `json:"last_updated"`
}

// WatchTimeSeconds derives total watch time from the snapshot.
func (v *VideoAnalytics) WatchTimeSeconds() int64 {
	return int64(v.AvgViewDuration * float64(v.Views))
}
