package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/insyte-io/linktrack/internal/metrics"
	"github.com/insyte-io/linktrack/internal/model"
	"github.com/insyte-io/linktrack/internal/repository"
)

// DefaultDeepViewDays is the deep-view window when the caller sends no
// dates: last 30 days.
const DefaultDeepViewDays = 30

// FunnelStore is the entity-store surface reports are computed from.
type FunnelStore interface {
	FindLinkBySlug(ctx context.Context, slug string) (*model.VideoLink, error)
	LinkFunnelStats(ctx context.Context, w model.Window) ([]*model.LinkStats, error)
	SlugFunnelStats(ctx context.Context, slug string, w model.Window) (*model.LinkStats, error)
	CountClicks(ctx context.Context, slug string, w model.Window) (int64, error)
	ClicksByDay(ctx context.Context, slug string, w model.Window) ([]model.DailyClickCount, error)
	QueryCalls(ctx context.Context, slug string, w model.Window) ([]*model.Call, error)
	PaymentTotals(ctx context.Context, slug string, w model.Window) (int64, float64, error)
	LatestVideoAnalytics(ctx context.Context, slug string, w model.Window) (*model.VideoAnalytics, error)
}

// FunnelService computes per-link funnel rollups and deep views.
// It is a pure function of stored rows: the same window over the same
// data always yields the same report.
type FunnelService struct {
	store        FunnelStore
	baseURL      string
	metrics      metrics.Recorder
	storeTimeout time.Duration
	now          func() time.Time
}

// NewFunnelService creates a new FunnelService.
func NewFunnelService(store FunnelStore, baseURL string, storeTimeout time.Duration, recorder metrics.Recorder) *FunnelService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &FunnelService{
		store:        store,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		metrics:      recorder,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

// AggregateAll returns funnel stats for every link, most recently
// created first.
func (s *FunnelService) AggregateAll(ctx context.Context, w model.Window) ([]*model.LinkStats, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveReportDuration(metrics.ReportFunnel, time.Since(start))
	}()

	ctx, cancel := s.reportContext(ctx)
	defer cancel()

	stats, err := s.store.LinkFunnelStats(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("aggregate links: %w", err)
	}

	return stats, nil
}

// AggregateLink returns funnel stats for one link.
func (s *FunnelService) AggregateLink(ctx context.Context, slug string, w model.Window) (*model.LinkStats, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveReportDuration(metrics.ReportFunnel, time.Since(start))
	}()

	ctx, cancel := s.reportContext(ctx)
	defer cancel()

	stats, err := s.store.SlugFunnelStats(ctx, slug, w)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("aggregate link %s: %w", slug, err)
	}

	return stats, nil
}

// DeepView produces the detailed per-link report: daily click series,
// call-status breakdown, deals and video metrics. A missing end bound
// defaults to now and a missing start bound to 30 days before the end.
// Missing optional data degrades to zero/estimated values, never an
// error.
func (s *FunnelService) DeepView(ctx context.Context, slug string, w model.Window) (*model.DeepView, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveReportDuration(metrics.ReportDeepView, time.Since(start))
	}()

	ctx, cancel := s.reportContext(ctx)
	defer cancel()

	// Each bound defaults independently: a missing end is now, and a
	// missing start is 30 days before the end.
	if w.End.IsZero() {
		w.End = s.now().UTC()
		if w.Start.IsZero() {
			w.Start = w.End.AddDate(0, 0, -DefaultDeepViewDays)
		}
	} else if w.Start.IsZero() {
		// A window built from a calendar end date is exclusive, one
		// day past the date, so the lookback anchors on the date
		// itself.
		w.Start = w.End.AddDate(0, 0, -(DefaultDeepViewDays + 1))
	}

	link, err := s.store.FindLinkBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("find link %s: %w", slug, err)
	}

	view := &model.DeepView{
		Title:       link.Title,
		Slug:        link.Slug,
		ShortURL:    s.baseURL + "/go/" + link.Slug,
		Destination: link.DestinationURL,
		CreatedAt:   link.CreatedAt,
	}

	view.Clicks, err = s.store.CountClicks(ctx, slug, w)
	if err != nil {
		return nil, fmt.Errorf("count clicks for %s: %w", slug, err)
	}

	view.ClicksData, err = s.store.ClicksByDay(ctx, slug, w)
	if err != nil {
		return nil, fmt.Errorf("daily clicks for %s: %w", slug, err)
	}
	if view.ClicksData == nil {
		view.ClicksData = []model.DailyClickCount{}
	}

	calls, err := s.store.QueryCalls(ctx, slug, w)
	if err != nil {
		return nil, fmt.Errorf("query calls for %s: %w", slug, err)
	}
	view.Calls.List = []model.CallRecord{}
	for _, call := range calls {
		view.Calls.Add(call)
	}

	dealCount, revenue, err := s.store.PaymentTotals(ctx, slug, w)
	if err != nil {
		return nil, fmt.Errorf("total payments for %s: %w", slug, err)
	}
	view.Deals = model.DealSummary{Closed: dealCount, Revenue: revenue}

	snapshot, err := s.store.LatestVideoAnalytics(ctx, slug, w)
	if err != nil {
		return nil, fmt.Errorf("video analytics for %s: %w", slug, err)
	}

	if snapshot != nil {
		view.Views = snapshot.Views
		view.VideoData = &model.VideoData{
			VideoID:          snapshot.VideoID,
			Views:            snapshot.Views,
			WatchTimeSeconds: snapshot.WatchTimeSeconds(),
			Likes:            snapshot.Likes,
			Comments:         snapshot.Comments,
			DurationSeconds:  int64(snapshot.AvgViewDuration),
			EngagementRate:   snapshot.EngagementRate,
			LastUpdated:      snapshot.LastUpdated.Format(time.RFC3339),
			LeadsGenerated:   int64(len(calls)),
			Revenue:          revenue,
		}
	} else {
		// No snapshot: estimate views as 2x clicks and say so. The
		// estimate must never be mistaken for a measurement.
		view.Views = view.Clicks * 2
		view.ViewsEstimated = true
	}

	return view, nil
}

func (s *FunnelService) reportContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout > 0 {
		return context.WithTimeout(ctx, s.storeTimeout)
	}
	return ctx, func() {}
}
