package core

import (
	"fmt"
	"net/url"
)

// ValidateLink checks that a link is storable: it must carry a parseable
// http or https URL. Enrichment fields are not validated; they are
// best-effort by design.
func ValidateLink(link *Link) error {
	if link == nil {
		return ErrInvalidLink
	}
	if link.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLink, ErrEmptyURL)
	}
	parsed, err := url.Parse(link.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLink, ErrMalformedURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: %w", ErrInvalidLink, ErrUnsupportedScheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLink, ErrMalformedURL)
	}
	return nil
}
