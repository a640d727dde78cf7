package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/insyte-io/linktrack/internal/handler/dto"
	"github.com/insyte-io/linktrack/internal/service"
)

// LinksHandler serves the dashboard API: funnel reports, deep views
// and link management.
type LinksHandler struct {
	funnel *service.FunnelService
	links  *service.LinkService
	logger *slog.Logger
}

// NewLinksHandler creates a new LinksHandler.
func NewLinksHandler(funnel *service.FunnelService, links *service.LinkService, logger *slog.Logger) *LinksHandler {
	return &LinksHandler{
		funnel: funnel,
		links:  links,
		logger: logger,
	}
}

// List handles GET /api/links. Optional start_date and end_date query
// parameters scope clicks, calls and payments; link rows themselves are
// never filtered out by the window.
func (h *LinksHandler) List(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	window, err := service.ParseWindow(startDate, endDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}

	stats, err := h.funnel.AggregateAll(r.Context(), window)
	if err != nil {
		h.logger.Error("funnel_report_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.FunnelListResponse{
		Links: stats,
		Count: len(stats),
		DateRange: dto.DateRange{
			StartDate: startDate,
			EndDate:   endDate,
		},
	})
}

// Stats handles GET /api/links/{slug}/stats for a single link rollup.
func (h *LinksHandler) Stats(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	window, err := service.ParseWindow(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}

	stats, err := h.funnel.AggregateLink(r.Context(), slug, window)
	if err != nil {
		h.handleReportError(w, slug, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// DeepView handles GET /api/links/deep-view/{slug}. Without dates the
// report covers the last 30 days.
func (h *LinksHandler) DeepView(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	window, err := service.ParseWindow(r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}

	view, err := h.funnel.DeepView(r.Context(), slug, window)
	if err != nil {
		h.handleReportError(w, slug, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Create handles POST /api/links/create.
func (h *LinksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateLinkInput{
		Title:          req.Title,
		Slug:           req.Slug,
		DestinationURL: req.DestinationURL,
		UTMSource:      req.UTMSource,
		UTMMedium:      req.UTMMedium,
		UTMCampaign:    req.UTMCampaign,
	}

	link, shareURL, err := h.links.CreateLink(r.Context(), input)
	if err != nil {
		h.handleCreateError(w, err)
		return
	}

	h.logger.Info("link_created", "slug", link.Slug, "title", link.Title)

	writeJSON(w, http.StatusCreated, dto.CreateLinkResponse{
		Slug: link.Slug,
		Link: shareURL,
	})
}

// ListLinks handles GET /api/links/all: raw link rows without funnel
// numbers.
func (h *LinksHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.links.ListLinks(r.Context())
	if err != nil {
		h.logger.Error("list_links_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	responses := make([]*dto.LinkResponse, len(links))
	for i, link := range links {
		responses[i] = dto.ToLinkResponse(link, h.links.BaseURL())
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"links": responses,
		"count": len(responses),
	})
}

// Delete handles DELETE /api/links/{slug}. All attribution rows for the
// slug go with it.
func (h *LinksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.links.DeleteLink(r.Context(), slug); err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			writeError(w, http.StatusNotFound, "LINK_NOT_FOUND", "No link found for slug: "+slug)
			return
		}
		h.logger.Error("delete_link_failed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("link_deleted", "slug", slug)
	w.WriteHeader(http.StatusNoContent)
}

func (h *LinksHandler) handleReportError(w http.ResponseWriter, slug string, err error) {
	if errors.Is(err, service.ErrLinkNotFound) {
		writeError(w, http.StatusNotFound, "LINK_NOT_FOUND", "No link found for slug: "+slug)
		return
	}

	h.logger.Error("report_failed", "slug", slug, "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
}

func (h *LinksHandler) handleCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTitle),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrInvalidDestination):
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrSlugExists):
		writeError(w, http.StatusConflict, "SLUG_EXISTS", err.Error())
	default:
		h.logger.Error("create_link_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
