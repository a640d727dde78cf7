package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/insyte-io/linktrack/internal/cache"
	"github.com/insyte-io/linktrack/internal/metrics"
	"github.com/insyte-io/linktrack/internal/model"
	"github.com/insyte-io/linktrack/internal/repository"
)

// ErrLinkNotFound is returned when no video link exists for a slug.
// Distinct from store failures: the caller answers 404 and must not
// record a click.
var ErrLinkNotFound = errors.New("link not found")

// RedirectStore is the entity-store surface the redirect path needs.
type RedirectStore interface {
	FindLinkBySlug(ctx context.Context, slug string) (*model.VideoLink, error)
	InsertClick(ctx context.Context, click *model.Click) error
}

// LinkCache is the optional hot-path cache in front of the store.
type LinkCache interface {
	GetLink(ctx context.Context, slug string) (*model.VideoLink, error)
	SetLink(ctx context.Context, link *model.VideoLink) error
	DeleteLink(ctx context.Context, slug string) error
	IsNegativelyCached(ctx context.Context, slug string) (bool, error)
	SetNegativeCache(ctx context.Context, slug string) error
}

// Redirect is the instruction handed back to the transport layer.
type Redirect struct {
	URL    string
	Status int
}

// RedirectService resolves slugs, records clicks and rewrites
// destination URLs for attribution.
type RedirectService struct {
	store        RedirectStore
	cache        LinkCache // may be nil
	metrics      metrics.Recorder
	storeTimeout time.Duration
	now          func() time.Time
}

// NewRedirectService creates a new RedirectService. cache may be nil;
// storeTimeout bounds every store call so a slow backend returns an
// error instead of hanging the redirect.
func NewRedirectService(store RedirectStore, linkCache LinkCache, storeTimeout time.Duration, recorder metrics.Recorder) *RedirectService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RedirectService{
		store:        store,
		cache:        linkCache,
		metrics:      recorder,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

// HandleClick resolves a slug, records the click and returns a 307
// redirect instruction with the rewritten destination.
//
// Ordering is load-bearing: the click row is persisted before the
// redirect instruction is returned, and a failed click write aborts the
// request. Redirecting without attribution would silently corrupt every
// downstream funnel number.
func (s *RedirectService) HandleClick(ctx context.Context, slug, clientIP, referrer string) (*Redirect, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveRedirectDuration(time.Since(start))
	}()

	if s.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
	}

	link, err := s.resolve(ctx, slug)
	if err != nil {
		return nil, err
	}

	click := &model.Click{
		ID:        model.NewID(),
		Slug:      link.Slug,
		Timestamp: s.now().UTC(), // server clock, never client-supplied
		IPAddress: clientIP,
		Referrer:  referrer,
	}

	if err := s.store.InsertClick(ctx, click); err != nil {
		s.metrics.IncClickRecordFailed()
		return nil, fmt.Errorf("record click for %s: %w", link.Slug, err)
	}
	s.metrics.IncClickRecorded()

	target, err := RewriteDestination(link.DestinationURL, link.Slug, link.Source(), link.Medium(), link.UTMCampaign)
	if err != nil {
		return nil, fmt.Errorf("rewrite destination for %s: %w", link.Slug, err)
	}

	// 307 preserves the method and body of the original request.
	return &Redirect{URL: target, Status: http.StatusTemporaryRedirect}, nil
}

// Resolve looks up a video link by slug without side effects.
func (s *RedirectService) Resolve(ctx context.Context, slug string) (*model.VideoLink, error) {
	if s.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
	}
	return s.resolve(ctx, slug)
}

// resolve is the cache-first slug lookup.
func (s *RedirectService) resolve(ctx context.Context, slug string) (*model.VideoLink, error) {
	if s.cache != nil {
		link, err := s.cache.GetLink(ctx, slug)
		if err == nil {
			s.metrics.IncRedirectCacheHit()
			return link, nil
		}

		if errors.Is(err, cache.ErrCacheMiss) {
			s.metrics.IncRedirectCacheMiss()
			if negative, _ := s.cache.IsNegativelyCached(ctx, slug); negative {
				return nil, ErrLinkNotFound
			}
		}
		// Redis errors fall through to the store.
	}

	link, err := s.store.FindLinkBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			if s.cache != nil {
				_ = s.cache.SetNegativeCache(ctx, slug)
			}
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("find link %s: %w", slug, err)
	}

	if s.cache != nil {
		_ = s.cache.SetLink(ctx, link)
	}

	return link, nil
}
