// Package sanitize holds the pure text-cleaning and validation primitives the
// personalization pipeline applies to every URL-supplied field.
package sanitize

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	angleBrackets = regexp.MustCompile(`[<>]`)
	jsScheme      = regexp.MustCompile(`(?i)javascript:`)
	eventHandler  = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	phonePattern  = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// Text strips angle brackets, javascript: scheme substrings, and inline
// event-handler attribute patterns (onClick= and friends), then trims
// surrounding whitespace. Empty input yields the empty string.
//
// This is a single cleaning pass, not a security boundary: it removes the
// listed patterns wherever they appear but makes no guarantee against inputs
// crafted to re-form a pattern once a nested occurrence is stripped.
func Text(input string) string {
	if input == "" {
		return ""
	}
	out := angleBrackets.ReplaceAllString(input, "")
	out = jsScheme.ReplaceAllString(out, "")
	out = eventHandler.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// IsValidURL reports whether candidate parses as an absolute http or https
// URL. It is total: any string, including the empty one, returns a boolean
// and never panics.
func IsValidURL(candidate string) bool {
	if candidate == "" {
		return false
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidPhoneNumber reports whether candidate looks like a phone number: an
// optional leading +, then at least 10 characters drawn from digits, spaces,
// hyphens, and parentheses. Purely syntactic, no locale awareness.
func IsValidPhoneNumber(candidate string) bool {
	return phonePattern.MatchString(strings.TrimSpace(candidate))
}
