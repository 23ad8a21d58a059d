// Package bluemonday sanitizes extracted article HTML.
package bluemonday

import (
	"strings"

	"github.com/fwojciec/readable"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements readable.Sanitizer at compile time.
var _ readable.Sanitizer = (*Sanitizer)(nil)

// Sanitizer strips scripts, event handlers and unsafe URLs from article
// content while keeping the structure the content builder produces.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer based on the user generated content policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	// Links are the author's own, not user submissions.
	p.RequireNoFollowOnLinks(false)
	p.AllowElements("picture", "figure", "figcaption", "video", "audio", "source", "track")
	p.AllowAttrs("srcset", "sizes").OnElements("img", "source")
	p.AllowAttrs("type").OnElements("source", "ol", "ul", "li")
	p.AllowAttrs("width", "height").OnElements("video", "source")
	p.AllowAttrs("controls").OnElements("video", "audio")
	p.AllowAttrs("src").OnElements("video", "audio", "source", "track")
	p.AllowAttrs("poster").OnElements("video")
	p.AllowAttrs("datetime").OnElements("time", "del", "ins")
	return &Sanitizer{policy: p}
}

// NewStrictSanitizer creates a Sanitizer that removes every tag and keeps
// only text.
func NewStrictSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize returns html with disallowed markup removed.
func (s *Sanitizer) Sanitize(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	return s.policy.Sanitize(html)
}
