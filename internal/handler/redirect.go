package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/insyte-io/linktrack/internal/service"
)

// RedirectHandler serves the public click-through endpoint.
type RedirectHandler struct {
	svc    *service.RedirectService
	logger *slog.Logger
}

// NewRedirectHandler creates a new RedirectHandler.
func NewRedirectHandler(svc *service.RedirectService, logger *slog.Logger) *RedirectHandler {
	return &RedirectHandler{
		svc:    svc,
		logger: logger,
	}
}

// Redirect handles GET /go/{slug}. The click is recorded before the
// response is written; a slug that cannot be recorded is not redirected.
func (h *RedirectHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeError(w, http.StatusNotFound, "LINK_NOT_FOUND", "Link not found")
		return
	}

	start := time.Now()

	rd, err := h.svc.HandleClick(r.Context(), slug, getClientIP(r), r.Referer())
	duration := time.Since(start)

	if err != nil {
		h.handleRedirectError(w, slug, err, duration)
		return
	}

	h.logger.Info("redirect_success",
		"slug", slug,
		"duration_ms", float64(duration.Microseconds())/1000,
	)

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=0")

	http.Redirect(w, r, rd.URL, rd.Status)
}

// handleRedirectError maps resolution and click-write failures to HTTP
// responses.
func (h *RedirectHandler) handleRedirectError(w http.ResponseWriter, slug string, err error, duration time.Duration) {
	if errors.Is(err, service.ErrLinkNotFound) {
		h.logger.Info("redirect_not_found",
			"slug", slug,
			"duration_ms", float64(duration.Microseconds())/1000,
		)
		writeError(w, http.StatusNotFound, "LINK_NOT_FOUND", "No link found for slug: "+slug)
		return
	}

	h.logger.Error("redirect_error",
		"slug", slug,
		"error", err,
		"duration_ms", float64(duration.Microseconds())/1000,
	)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
}
