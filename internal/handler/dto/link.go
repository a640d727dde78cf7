// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/insyte-io/linktrack/internal/model"
)

// CreateLinkRequest represents the request body for creating a link.
type CreateLinkRequest struct {
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	DestinationURL string `json:"destination_url"`
	UTMSource      string `json:"utm_source,omitempty"`
	UTMMedium      string `json:"utm_medium,omitempty"`
	UTMCampaign    string `json:"utm_campaign,omitempty"`
}

// CreateLinkResponse is returned after a successful link creation.
type CreateLinkResponse struct {
	Slug string `json:"slug"`
	Link string `json:"link"`
}

// LinkResponse represents a tracking link in API responses.
type LinkResponse struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	ShortURL       string    `json:"short_url"`
	Title          string    `json:"title"`
	DestinationURL string    `json:"destination_url"`
	UTMSource      string    `json:"utm_source,omitempty"`
	UTMMedium      string    `json:"utm_medium,omitempty"`
	UTMCampaign    string    `json:"utm_campaign,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DateRange echoes the window a report was computed over.
type DateRange struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// FunnelListResponse wraps the per-link funnel rollups.
type FunnelListResponse struct {
	Links     []*model.LinkStats `json:"links"`
	Count     int                `json:"count"`
	DateRange DateRange          `json:"date_range"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToLinkResponse converts a VideoLink model to LinkResponse DTO.
func ToLinkResponse(link *model.VideoLink, baseURL string) *LinkResponse {
	return &LinkResponse{
		ID:             link.ID,
		Slug:           link.Slug,
		ShortURL:       baseURL + "/go/" + link.Slug,
		Title:          link.Title,
		DestinationURL: link.DestinationURL,
		UTMSource:      link.UTMSource,
		UTMMedium:      link.UTMMedium,
		UTMCampaign:    link.UTMCampaign,
		CreatedAt:      link.CreatedAt,
	}
}
