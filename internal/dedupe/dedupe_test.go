package dedupe

import (
	"testing"
	"time"

	"github.com/timelinehq/aitimeline/internal/item"
	"github.com/timelinehq/aitimeline/internal/score"
)

var testCredibility = score.CredibilityTable{
	"OpenAI Blog": 20,
	"Hacker News": 8,
}

func makeItem(title, url, source string) item.Item {
	return item.Item{
		Title:     title,
		URL:       url,
		Source:    source,
		Published: time.Now().UTC(),
	}
}

func TestTitleSimilarityIdentical(t *testing.T) {
	if got := TitleSimilarity("OpenAI announces GPT-5", "OpenAI announces GPT-5"); got != 1.0 {
		t.Errorf("expected 1.0 for identical titles, got %f", got)
	}
}

func TestTitleSimilarityCaseInsensitive(t *testing.T) {
	if got := TitleSimilarity("OPENAI ANNOUNCES GPT-5", "openai announces gpt-5"); got != 1.0 {
		t.Errorf("expected 1.0 for case-differing titles, got %f", got)
	}
}

func TestTitleSimilaritySimilar(t *testing.T) {
	got := TitleSimilarity(
		"OpenAI announces GPT-5 with new features",
		"OpenAI announces GPT-5 with improved features",
	)
	if got <= 0.85 {
		t.Errorf("expected similarity > 0.85, got %f", got)
	}
}

func TestTitleSimilarityDifferent(t *testing.T) {
	got := TitleSimilarity("OpenAI announces GPT-5", "Google releases Gemini 2.0")
	if got >= 0.5 {
		t.Errorf("expected similarity < 0.5, got %f", got)
	}
}

func TestDeduplicateEmpty(t *testing.T) {
	d := New(testCredibility, 0)
	if got := d.Deduplicate(nil); len(got) != 0 {
		t.Errorf("expected empty output, got %d items", len(got))
	}
}

func TestDeduplicateSingleItemPassthrough(t *testing.T) {
	d := New(testCredibility, 0)
	got := d.Deduplicate([]item.Item{makeItem("Solo", "https://a.com/x", "Test")})
	if len(got) != 1 || got[0].Title != "Solo" {
		t.Errorf("expected passthrough, got %v", got)
	}
}

func TestDeduplicatesByURL(t *testing.T) {
	items := []item.Item{
		makeItem("Article 1", "https://example.com/article", "Test"),
		makeItem("Article 2", "https://example.com/article", "Test"),
	}
	got := New(testCredibility, 0).Deduplicate(items)
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].Title != "Article 1" {
		t.Errorf("expected first occurrence to win URL dedup, got %q", got[0].Title)
	}
}

func TestDeduplicatesByNormalizedURL(t *testing.T) {
	items := []item.Item{
		makeItem("A", "https://www.example.com/article?utm_source=rss", "Test"),
		makeItem("B", "https://example.com/article/", "Test"),
	}
	got := New(testCredibility, 0).Deduplicate(items)
	if len(got) != 1 {
		t.Errorf("expected 1 item for normalization-equal URLs, got %d", len(got))
	}
}

func TestDeduplicatesBySimilarTitle(t *testing.T) {
	items := []item.Item{
		makeItem("OpenAI announces GPT-5 today", "https://example1.com/article", "Test"),
		makeItem("OpenAI announces GPT-5 today!", "https://example2.com/article", "Test"),
	}
	got := New(testCredibility, 0).Deduplicate(items)
	if len(got) != 1 {
		t.Errorf("expected 1 item, got %d", len(got))
	}
}

func TestKeepsDifferentArticles(t *testing.T) {
	items := []item.Item{
		makeItem("OpenAI announces GPT-5", "https://example.com/openai", "Test"),
		makeItem("Google releases Gemini 2.0", "https://example.com/google", "Test"),
	}
	got := New(testCredibility, 0).Deduplicate(items)
	if len(got) != 2 {
		t.Errorf("expected 2 items, got %d", len(got))
	}
}

func TestPrefersHigherCredibilitySource(t *testing.T) {
	items := []item.Item{
		makeItem("OpenAI announces GPT-5", "https://a.com/x", "Hacker News"),
		makeItem("OpenAI announces GPT-5!", "https://b.com/x", "OpenAI Blog"),
	}
	got := New(testCredibility, 0).Deduplicate(items)
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].Source != "OpenAI Blog" {
		t.Errorf("expected the more credible source to survive, got %q", got[0].Source)
	}
}

func TestLowerCredibilityDuplicateDiscarded(t *testing.T) {
	items := []item.Item{
		makeItem("OpenAI announces GPT-5", "https://a.com/x", "OpenAI Blog"),
		makeItem("OpenAI announces GPT-5!", "https://b.com/x", "Hacker News"),
	}
	got := New(testCredibility, 0).Deduplicate(items)
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].Source != "OpenAI Blog" {
		t.Errorf("expected the existing credible entry to stay, got %q", got[0].Source)
	}
}

func TestEqualCredibilityKeepsExisting(t *testing.T) {
	items := []item.Item{
		makeItem("OpenAI announces GPT-5", "https://a.com/x", "First Source"),
		makeItem("OpenAI announces GPT-5!", "https://b.com/x", "Second Source"),
	}
	got := New(testCredibility, 0).Deduplicate(items)
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].Source != "First Source" {
		t.Errorf("expected existing entry kept on credibility tie, got %q", got[0].Source)
	}
}

func TestReplacementMovesToEnd(t *testing.T) {
	items := []item.Item{
		makeItem("OpenAI announces GPT-5", "https://a.com/x", "Hacker News"),
		makeItem("Google releases Gemini 2.0", "https://b.com/y", "Test"),
		makeItem("OpenAI announces GPT-5!", "https://c.com/z", "OpenAI Blog"),
	}
	got := New(testCredibility, 0).Deduplicate(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[len(got)-1].Source != "OpenAI Blog" {
		t.Errorf("expected replacement appended at the end, got %q last", got[len(got)-1].Source)
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	items := []item.Item{
		makeItem("OpenAI announces GPT-5", "https://a.com/x", "Hacker News"),
		makeItem("OpenAI announces GPT-5!", "https://b.com/x", "OpenAI Blog"),
		makeItem("Google releases Gemini 2.0", "https://b.com/y", "Test"),
	}
	d := New(testCredibility, 0)
	once := d.Deduplicate(items)
	twice := d.Deduplicate(once)

	if len(once) != len(twice) {
		t.Fatalf("expected idempotent dedup: %d vs %d items", len(once), len(twice))
	}
	urls := make(map[string]bool)
	for _, it := range once {
		urls[it.URL] = true
	}
	for _, it := range twice {
		if !urls[it.URL] {
			t.Errorf("second pass produced unexpected item %q", it.URL)
		}
	}
}
