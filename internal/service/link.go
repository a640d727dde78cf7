package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/insyte-io/linktrack/internal/metrics"
	"github.com/insyte-io/linktrack/internal/model"
	"github.com/insyte-io/linktrack/internal/repository"
)

// Link management errors.
var (
	ErrInvalidSlug  = errors.New("slug must be lowercase alphanumeric with dashes, 3-100 chars")
	ErrInvalidTitle = errors.New("title must be 1-255 chars")
	ErrSlugExists   = errors.New("slug already exists")
)

const maxDestinationLength = 1024

// LinkStore is the entity-store surface for link management.
type LinkStore interface {
	CreateLink(ctx context.Context, link *model.VideoLink) error
	DeleteLink(ctx context.Context, slug string) error
	ListLinks(ctx context.Context) ([]*model.VideoLink, error)
}

// LinkService handles creation and deletion of tracking links.
type LinkService struct {
	store        LinkStore
	cache        LinkCache // may be nil
	baseURL      string
	metrics      metrics.Recorder
	storeTimeout time.Duration
	now          func() time.Time
}

// NewLinkService creates a new LinkService. cache may be nil.
func NewLinkService(store LinkStore, linkCache LinkCache, baseURL string, storeTimeout time.Duration, recorder metrics.Recorder) *LinkService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &LinkService{
		store:        store,
		cache:        linkCache,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		metrics:      recorder,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

// BaseURL returns the configured public base URL without a trailing slash.
func (s *LinkService) BaseURL() string {
	return s.baseURL
}

// CreateLinkInput defines input for creating a tracking link.
type CreateLinkInput struct {
	Title          string
	Slug           string
	DestinationURL string
	UTMSource      string
	UTMMedium      string
	UTMCampaign    string
}

// CreateLink validates input and persists a new tracking link, returning
// the link and its shareable URL.
func (s *LinkService) CreateLink(ctx context.Context, input CreateLinkInput) (*model.VideoLink, string, error) {
	if len(input.Title) == 0 || len(input.Title) > 255 {
		return nil, "", ErrInvalidTitle
	}
	if !model.ValidSlug(input.Slug) {
		return nil, "", ErrInvalidSlug
	}
	if err := validateDestination(input.DestinationURL); err != nil {
		return nil, "", err
	}

	if s.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
	}

	link := &model.VideoLink{
		ID:             model.NewID(),
		Slug:           input.Slug,
		Title:          input.Title,
		DestinationURL: input.DestinationURL,
		UTMSource:      input.UTMSource,
		UTMMedium:      input.UTMMedium,
		UTMCampaign:    input.UTMCampaign,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.store.CreateLink(ctx, link); err != nil {
		if errors.Is(err, repository.ErrSlugExists) {
			return nil, "", ErrSlugExists
		}
		return nil, "", fmt.Errorf("create link: %w", err)
	}

	s.metrics.IncLinkCreated()

	if s.cache != nil {
		// A recent miss may have negatively cached the slug; clear it
		// so the new link redirects immediately.
		_ = s.cache.DeleteLink(ctx, link.Slug)
	}

	return link, s.baseURL + "/go/" + link.Slug, nil
}

// DeleteLink removes a tracking link and its dependents.
func (s *LinkService) DeleteLink(ctx context.Context, slug string) error {
	if s.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
	}

	if err := s.store.DeleteLink(ctx, slug); err != nil {
		if errors.Is(err, repository.ErrLinkNotFound) {
			return ErrLinkNotFound
		}
		return fmt.Errorf("delete link: %w", err)
	}

	s.metrics.IncLinkDeleted()

	if s.cache != nil {
		// Eventual consistency is acceptable here; the cache entry
		// expires on its own if the invalidation fails.
		_ = s.cache.DeleteLink(ctx, slug)
	}

	return nil
}

// ListLinks returns all tracking links, most recently created first.
func (s *LinkService) ListLinks(ctx context.Context) ([]*model.VideoLink, error) {
	if s.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
	}
	return s.store.ListLinks(ctx)
}

// validateDestination validates a destination URL.
func validateDestination(dest string) error {
	if dest == "" || len(dest) > maxDestinationLength {
		return ErrInvalidDestination
	}

	parsed, err := url.Parse(dest)
	if err != nil {
		return ErrInvalidDestination
	}

	// Only allow http and https schemes
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidDestination
	}

	// Must have a host
	if parsed.Host == "" {
		return ErrInvalidDestination
	}

	return nil
}
