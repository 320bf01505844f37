// Package textutil holds small text helpers shared by ingestion,
// generation, and the preview server.
package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	codeBlockPattern  = regexp.MustCompile("(?s)```.*?```")
	inlineCodePattern = regexp.MustCompile("`[^`]*`")
	imagePattern      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headerPattern     = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	emphasisPattern   = regexp.MustCompile(`[*_]{1,3}`)
)

// CleanHTML strips HTML tags, decodes common entities, and collapses
// whitespace.
func CleanHTML(html string) string {
	s := tagPattern.ReplaceAllString(html, " ")

	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")

	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens text to at most max characters, preferring to break
// at a word boundary, and appends "..." when anything was cut.
func Truncate(text string, max int) string {
	const suffix = "..."
	if len(text) <= max {
		return text
	}
	cut := text[:max-len(suffix)]
	if i := strings.LastIndexByte(cut, ' '); i > max/2 {
		cut = cut[:i]
	}
	return cut + suffix
}

// ClipRunes shortens text to at most max runes, never splitting a
// multi-byte character.
func ClipRunes(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max])
}

// wordsPerMinute is the average adult silent reading speed.
const wordsPerMinute = 238

// ReadingTime estimates reading time in whole minutes for a markdown
// document. Code blocks, images, and link targets are excluded from the
// word count; link text is kept. Minimum is one minute.
func ReadingTime(markdown string) int {
	s := codeBlockPattern.ReplaceAllString(markdown, " ")
	s = imagePattern.ReplaceAllString(s, " ")
	s = linkPattern.ReplaceAllString(s, "$1")
	s = inlineCodePattern.ReplaceAllString(s, " ")
	s = headerPattern.ReplaceAllString(s, "")
	s = emphasisPattern.ReplaceAllString(s, "")

	words := len(strings.Fields(s))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
