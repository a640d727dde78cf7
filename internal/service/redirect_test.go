package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/insyte-io/linktrack/internal/cache"
	"github.com/insyte-io/linktrack/internal/model"
	"github.com/insyte-io/linktrack/internal/repository"
)

// fakeRedirectStore is an in-memory RedirectStore.
type fakeRedirectStore struct {
	links       map[string]*model.VideoLink
	clicks      []*model.Click
	insertErr   error
	findErr     error
	findCalls   int
	insertCalls int
}

func newFakeRedirectStore(links ...*model.VideoLink) *fakeRedirectStore {
	s := &fakeRedirectStore{links: make(map[string]*model.VideoLink)}
	for _, l := range links {
		s.links[l.Slug] = l
	}
	return s
}

func (s *fakeRedirectStore) FindLinkBySlug(ctx context.Context, slug string) (*model.VideoLink, error) {
	s.findCalls++
	if s.findErr != nil {
		return nil, s.findErr
	}
	link, ok := s.links[slug]
	if !ok {
		return nil, repository.ErrLinkNotFound
	}
	return link, nil
}

func (s *fakeRedirectStore) InsertClick(ctx context.Context, click *model.Click) error {
	s.insertCalls++
	if s.insertErr != nil {
		return s.insertErr
	}
	s.clicks = append(s.clicks, click)
	return nil
}

// fakeLinkCache is an in-memory LinkCache.
type fakeLinkCache struct {
	links    map[string]*model.VideoLink
	negative map[string]bool
}

func newFakeLinkCache() *fakeLinkCache {
	return &fakeLinkCache{
		links:    make(map[string]*model.VideoLink),
		negative: make(map[string]bool),
	}
}

func (c *fakeLinkCache) GetLink(ctx context.Context, slug string) (*model.VideoLink, error) {
	if link, ok := c.links[slug]; ok {
		return link, nil
	}
	return nil, cache.ErrCacheMiss
}

func (c *fakeLinkCache) SetLink(ctx context.Context, link *model.VideoLink) error {
	c.links[link.Slug] = link
	delete(c.negative, link.Slug)
	return nil
}

func (c *fakeLinkCache) DeleteLink(ctx context.Context, slug string) error {
	delete(c.links, slug)
	delete(c.negative, slug)
	return nil
}

func (c *fakeLinkCache) IsNegativelyCached(ctx context.Context, slug string) (bool, error) {
	return c.negative[slug], nil
}

func (c *fakeLinkCache) SetNegativeCache(ctx context.Context, slug string) error {
	c.negative[slug] = true
	return nil
}

func testLink(slug, dest string) *model.VideoLink {
	return &model.VideoLink{
		ID:             model.NewID(),
		Slug:           slug,
		Title:          "Test " + slug,
		DestinationURL: dest,
		CreatedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestHandleClick_RecordsClickAndRedirects(t *testing.T) {
	store := newFakeRedirectStore(testLink("summer-promo", "https://example.com/landing?ref=abc"))
	svc := NewRedirectService(store, nil, time.Second, nil)

	fixed := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	rd, err := svc.HandleClick(context.Background(), "summer-promo", "203.0.113.7", "https://youtube.com/watch?v=x")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if rd.Status != http.StatusTemporaryRedirect {
		t.Errorf("expected status 307, got %d", rd.Status)
	}

	if len(store.clicks) != 1 {
		t.Fatalf("expected exactly one click recorded, got %d", len(store.clicks))
	}
	click := store.clicks[0]
	if click.Slug != "summer-promo" {
		t.Errorf("expected click slug summer-promo, got %s", click.Slug)
	}
	if !click.Timestamp.Equal(fixed) {
		t.Errorf("expected server timestamp %v, got %v", fixed, click.Timestamp)
	}
	if click.IPAddress != "203.0.113.7" {
		t.Errorf("expected client IP recorded, got %s", click.IPAddress)
	}
	if click.Referrer != "https://youtube.com/watch?v=x" {
		t.Errorf("expected referrer recorded, got %s", click.Referrer)
	}
	if click.ID == "" {
		t.Error("expected a generated click ID")
	}

	parsed, err := url.Parse(rd.URL)
	if err != nil {
		t.Fatalf("redirect URL does not parse: %v", err)
	}
	q := parsed.Query()
	if q.Get("utm_source") != "youtube" || q.Get("utm_medium") != "video" {
		t.Errorf("expected default attribution, got %s", rd.URL)
	}
	if q.Get("utm_content") != "summer-promo" {
		t.Errorf("expected utm_content=summer-promo, got %s", rd.URL)
	}
	if q.Get("ref") != "abc" {
		t.Errorf("expected original params preserved, got %s", rd.URL)
	}
}

func TestHandleClick_UsesLinkUTMOverrides(t *testing.T) {
	link := testLink("promo", "https://example.com/")
	link.UTMSource = "newsletter"
	link.UTMMedium = "email"
	link.UTMCampaign = "q3-launch"
	store := newFakeRedirectStore(link)
	svc := NewRedirectService(store, nil, time.Second, nil)

	rd, err := svc.HandleClick(context.Background(), "promo", "", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	parsed, _ := url.Parse(rd.URL)
	q := parsed.Query()
	if q.Get("utm_source") != "newsletter" || q.Get("utm_medium") != "email" || q.Get("utm_campaign") != "q3-launch" {
		t.Errorf("expected link overrides applied, got %s", rd.URL)
	}
}

func TestHandleClick_UnknownSlug(t *testing.T) {
	store := newFakeRedirectStore()
	svc := NewRedirectService(store, nil, time.Second, nil)

	_, err := svc.HandleClick(context.Background(), "nope", "", "")
	if !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}

	if store.insertCalls != 0 {
		t.Errorf("expected no click insert for unknown slug, got %d", store.insertCalls)
	}
}

func TestHandleClick_ClickWriteFailureAbortsRedirect(t *testing.T) {
	store := newFakeRedirectStore(testLink("promo", "https://example.com/"))
	store.insertErr = errors.New("connection refused")
	svc := NewRedirectService(store, nil, time.Second, nil)

	rd, err := svc.HandleClick(context.Background(), "promo", "", "")
	if err == nil {
		t.Fatal("expected error when click write fails")
	}
	if rd != nil {
		t.Errorf("expected no redirect instruction, got %+v", rd)
	}
}

func TestHandleClick_CacheHitSkipsStore(t *testing.T) {
	link := testLink("promo", "https://example.com/")
	store := newFakeRedirectStore(link)
	linkCache := newFakeLinkCache()
	if err := linkCache.SetLink(context.Background(), link); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	svc := NewRedirectService(store, linkCache, time.Second, nil)

	if _, err := svc.HandleClick(context.Background(), "promo", "", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if store.findCalls != 0 {
		t.Errorf("expected cache hit to skip the store lookup, got %d calls", store.findCalls)
	}
	if store.insertCalls != 1 {
		t.Errorf("expected the click still recorded on cache hit, got %d", store.insertCalls)
	}
}

func TestHandleClick_CacheMissBackfills(t *testing.T) {
	link := testLink("promo", "https://example.com/")
	store := newFakeRedirectStore(link)
	linkCache := newFakeLinkCache()

	svc := NewRedirectService(store, linkCache, time.Second, nil)

	if _, err := svc.HandleClick(context.Background(), "promo", "", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := linkCache.links["promo"]; !ok {
		t.Error("expected cache backfilled after store lookup")
	}
}

func TestResolve_NegativeCacheShortCircuits(t *testing.T) {
	store := newFakeRedirectStore()
	linkCache := newFakeLinkCache()
	linkCache.negative["gone"] = true

	svc := NewRedirectService(store, linkCache, time.Second, nil)

	_, err := svc.Resolve(context.Background(), "gone")
	if !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
	if store.findCalls != 0 {
		t.Errorf("expected negative cache to skip the store, got %d calls", store.findCalls)
	}
}

func TestResolve_UnknownSlugSetsNegativeCache(t *testing.T) {
	store := newFakeRedirectStore()
	linkCache := newFakeLinkCache()

	svc := NewRedirectService(store, linkCache, time.Second, nil)

	if _, err := svc.Resolve(context.Background(), "gone"); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
	if !linkCache.negative["gone"] {
		t.Error("expected unknown slug to be negatively cached")
	}
}
