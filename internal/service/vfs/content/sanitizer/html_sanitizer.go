package sanitizer

import (
	"github.com/microcosm-cc/bluemonday"
)

// HTMLSanitizer strips scripts, event handlers and other active content
// from saved pages before they are exported.
//
// Thread-safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer creates a sanitizer for exporting saved pages.
// Formatting, links, images and tables survive; relative URLs are kept so
// exported markdown still points at the page's local assets.
func NewHTMLSanitizer() *HTMLSanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowRelativeURLs(true)
	policy.AllowDataURIImages()
	policy.RequireNoFollowOnLinks(false)

	return &HTMLSanitizer{policy: policy}
}

// Sanitize removes dangerous HTML while preserving safe content
func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
