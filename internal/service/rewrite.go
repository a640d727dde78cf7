// Package service provides business logic for the application.
package service

import (
	"errors"
	"net/url"
)

// ErrInvalidDestination is returned when a destination URL cannot be parsed.
var ErrInvalidDestination = errors.New("invalid destination URL")

// Reserved attribution parameters. RewriteDestination overwrites these
// on the destination URL; all other query parameters pass through.
const (
	paramSource   = "utm_source"
	paramMedium   = "utm_medium"
	paramContent  = "utm_content"
	paramCampaign = "utm_campaign"
)

// RewriteDestination rewrites a destination URL's query string to carry
// attribution parameters. utm_source, utm_medium and utm_content are
// overwritten (not appended); utm_campaign is set only when campaign is
// non-empty. Scheme, host, path and fragment are preserved. Pure
// function: same inputs always yield the same key/value set.
func RewriteDestination(destination, slug, source, medium, campaign string) (string, error) {
	parsed, err := url.Parse(destination)
	if err != nil {
		return "", ErrInvalidDestination
	}

	query := parsed.Query()
	query.Set(paramSource, source)
	query.Set(paramMedium, medium)
	query.Set(paramContent, slug)
	if campaign != "" {
		query.Set(paramCampaign, campaign)
	}

	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
