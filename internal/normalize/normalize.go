// Package normalize canonicalizes URLs for duplicate detection and
// extracts numeric signals from headline text.
package normalize

import (
	"net/url"
	"regexp"
	"strings"
)

// trackingParams are query parameters stripped during URL normalization.
// Keys are matched case-insensitively.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"ref":          {},
	"source":       {},
	"fbclid":       {},
	"gclid":        {},
}

// URL returns a canonical form of raw used only for equality comparison
// during dedup: lowercased scheme and host, "www." prefix removed,
// tracking parameters stripped (remaining parameters keep their original
// relative order), trailing slashes trimmed from the path, and the
// fragment dropped. Unparseable input is returned unchanged.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	var kept []string
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key = pair[:i]
		}
		if _, tracked := trackingParams[strings.ToLower(key)]; tracked {
			continue
		}
		kept = append(kept, pair)
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(u.Scheme))
	b.WriteString("://")
	b.WriteString(host)
	b.WriteString(strings.TrimRight(u.EscapedPath(), "/"))
	if len(kept) > 0 {
		b.WriteString("?")
		b.WriteString(strings.Join(kept, "&"))
	}
	return b.String()
}

// numberPatterns are applied in order; matches are collected pattern by
// pattern, not interleaved by position in the text.
var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$[\d,]+(?:\.\d+)?[BMK]?`), // monetary amounts
	regexp.MustCompile(`(?i)[\d.]+[BMK]\b`),            // abbreviated magnitudes (5B, 100M)
	regexp.MustCompile(`\d{4}`),                        // years
	regexp.MustCompile(`\d+(?:\.\d+)?%`),               // percentages
}

// ExtractNumbers returns all monetary, magnitude, year, and percentage
// patterns found in text. Items carrying specific figures tend to be
// more newsworthy, so the count feeds the scorer.
func ExtractNumbers(text string) []string {
	var numbers []string
	for _, p := range numberPatterns {
		numbers = append(numbers, p.FindAllString(text, -1)...)
	}
	return numbers
}
