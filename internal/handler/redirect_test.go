package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/insyte-io/linktrack/internal/model"
	"github.com/insyte-io/linktrack/internal/repository"
	"github.com/insyte-io/linktrack/internal/service"
)

// stubStore is an in-memory store for handler tests.
type stubStore struct {
	links     map[string]*model.VideoLink
	clicks    []*model.Click
	insertErr error
}

func newStubStore(links ...*model.VideoLink) *stubStore {
	s := &stubStore{links: make(map[string]*model.VideoLink)}
	for _, l := range links {
		s.links[l.Slug] = l
	}
	return s
}

func (s *stubStore) FindLinkBySlug(ctx context.Context, slug string) (*model.VideoLink, error) {
	link, ok := s.links[slug]
	if !ok {
		return nil, repository.ErrLinkNotFound
	}
	return link, nil
}

func (s *stubStore) InsertClick(ctx context.Context, click *model.Click) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.clicks = append(s.clicks, click)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&discardWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func newRedirectRouter(store *stubStore) *chi.Mux {
	svc := service.NewRedirectService(store, nil, time.Second, nil)
	h := NewRedirectHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Get("/go/{slug}", h.Redirect)
	return r
}

func TestRedirect_Success(t *testing.T) {
	store := newStubStore(&model.VideoLink{
		ID:             model.NewID(),
		Slug:           "summer-promo",
		Title:          "Summer promo",
		DestinationURL: "https://example.com/landing?ref=abc",
		CreatedAt:      time.Now().UTC(),
	})
	router := newRedirectRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/go/summer-promo", nil)
	req.Header.Set("Referer", "https://youtube.com/watch?v=x")
	req.RemoteAddr = "203.0.113.7:51234"
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d: %s", rec.Code, rec.Body.String())
	}

	location := rec.Header().Get("Location")
	parsed, err := url.Parse(location)
	if err != nil {
		t.Fatalf("Location does not parse: %v", err)
	}
	q := parsed.Query()
	if q.Get("utm_source") != "youtube" || q.Get("utm_medium") != "video" || q.Get("utm_content") != "summer-promo" {
		t.Errorf("missing attribution params in %s", location)
	}
	if q.Get("ref") != "abc" {
		t.Errorf("original query params lost in %s", location)
	}

	if len(store.clicks) != 1 {
		t.Fatalf("expected one click recorded, got %d", len(store.clicks))
	}
	if store.clicks[0].Referrer != "https://youtube.com/watch?v=x" {
		t.Errorf("expected referrer captured, got %s", store.clicks[0].Referrer)
	}
}

func TestRedirect_UnknownSlug(t *testing.T) {
	router := newRedirectRouter(newStubStore())

	req := httptest.NewRequest(http.MethodGet, "/go/missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Code != "LINK_NOT_FOUND" {
		t.Errorf("expected code LINK_NOT_FOUND, got %s", resp.Code)
	}
}

func TestRedirect_ClickWriteFailure(t *testing.T) {
	store := newStubStore(&model.VideoLink{
		ID:             model.NewID(),
		Slug:           "promo",
		Title:          "Promo",
		DestinationURL: "https://example.com/",
		CreatedAt:      time.Now().UTC(),
	})
	store.insertErr = errors.New("db down")
	router := newRedirectRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/go/promo", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when click write fails, got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Error("expected no redirect when click write fails")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"cloudflare header", map[string]string{"CF-Connecting-IP": "198.51.100.4"}, "10.0.0.1:1234", "198.51.100.4"},
		{"cloudflare wins over x-forwarded-for", map[string]string{"CF-Connecting-IP": "198.51.100.4", "X-Forwarded-For": "10.0.0.2"}, "10.0.0.1:1234", "198.51.100.4"},
		{"x-forwarded-for single", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "10.0.0.1:1234", "198.51.100.1"},
		{"x-forwarded-for chain", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.2"}, "10.0.0.1:1234", "198.51.100.1"},
		{"x-real-ip", map[string]string{"X-Real-IP": "198.51.100.9"}, "10.0.0.1:1234", "198.51.100.9"},
		{"remote addr fallback", nil, "203.0.113.7:51234", "203.0.113.7:51234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
