package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"entities", "AT&amp;T says &quot;hi&quot;", `AT&T says "hi"`},
		{"whitespace", "  a \n\n  b\tc  ", "a b c"},
		{"plain", "already clean", "already clean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanHTML(tt.in); got != tt.want {
				t.Errorf("CleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncateShortTextUnchanged(t *testing.T) {
	if got := Truncate("short", 100); got != "short" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestTruncateBreaksAtWordBoundary(t *testing.T) {
	got := Truncate("the quick brown fox jumps over the lazy dog", 25)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if len(got) > 25 {
		t.Errorf("expected at most 25 chars, got %d", len(got))
	}
	trimmed := strings.TrimSuffix(got, "...")
	if strings.HasSuffix(trimmed, " ") {
		t.Errorf("expected no trailing space before ellipsis, got %q", got)
	}
}

func TestClipRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short passthrough", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"ascii clipped", "hello world", 5, "hello"},
		{"multibyte clipped", "ab日本語テキスト", 4, "ab日本"},
		{"multibyte passthrough", "日本語", 3, "日本語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClipRunes(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("ClipRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("ClipRunes(%q, %d) produced invalid UTF-8", tt.in, tt.max)
			}
		})
	}
}

func TestReadingTimeBasic(t *testing.T) {
	text := strings.Repeat("word ", 238)
	if got := ReadingTime(text); got != 1 {
		t.Errorf("expected 1 minute for 238 words, got %d", got)
	}
}

func TestReadingTimeRoundsUp(t *testing.T) {
	text := strings.Repeat("word ", 500)
	if got := ReadingTime(text); got != 3 {
		t.Errorf("expected 3 minutes for 500 words, got %d", got)
	}
}

func TestReadingTimeMinimumOneMinute(t *testing.T) {
	if got := ReadingTime("Just a few words"); got != 1 {
		t.Errorf("expected minimum of 1 minute, got %d", got)
	}
}

func TestReadingTimeStripsMarkdown(t *testing.T) {
	text := "# Heading\n\nThis is **bold** text with [a link](https://example.com).\n\n```\ncode removed\n```\n"
	if got := ReadingTime(text); got != 1 {
		t.Errorf("expected 1 minute, got %d", got)
	}
}

func TestReadingTimeRealisticArticle(t *testing.T) {
	article := "# The Future of AI\n\n" + strings.Repeat("lorem ", 1000) + "\n\nThis is the conclusion."
	got := ReadingTime(article)
	if got != 5 {
		t.Errorf("expected 5 minutes for ~1000 words, got %d", got)
	}
}
