package utils

import "github.com/microcosm-cc/bluemonday"

// Sanitizer filters user-submitted HTML. In strict mode only a small allow-list
// of inline and structural tags survives; in permissive mode input passes
// through untouched, which makes stored XSS possible. Permissive mode is a
// deliberate deployment choice for demonstrating that class of bug.
type Sanitizer struct {
	permissive bool
	policy     *bluemonday.Policy
}

// NewSanitizer builds a Sanitizer for the given mode.
func NewSanitizer(permissive bool) *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "em", "strong", "a", "p", "br", "ul", "ol", "li")
	p.AllowAttrs("href", "rel", "target").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	return &Sanitizer{permissive: permissive, policy: p}
}

// Sanitize returns the cleaned form of raw, or raw itself in permissive mode.
// It is a pure function of its input and the fixed mode.
func (s *Sanitizer) Sanitize(raw string) string {
	if s.permissive {
		return raw
	}
	return s.policy.Sanitize(raw)
}

// Permissive reports whether sanitization is disabled.
func (s *Sanitizer) Permissive() bool {
	return s.permissive
}
