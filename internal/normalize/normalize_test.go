package normalize

import (
	"strings"
	"testing"
)

func TestURLRemovesWWWPrefix(t *testing.T) {
	got := URL("https://www.example.com/article")
	if strings.Contains(got, "www.") {
		t.Errorf("expected www. stripped, got %q", got)
	}
	if !strings.Contains(got, "example.com") {
		t.Errorf("expected host preserved, got %q", got)
	}
}

func TestURLRemovesTrackingParams(t *testing.T) {
	got := URL("https://example.com/article?utm_source=twitter&utm_medium=social")
	if strings.Contains(got, "utm_source") || strings.Contains(got, "utm_medium") {
		t.Errorf("expected tracking params stripped, got %q", got)
	}
}

func TestURLPreservesOtherParamsInOrder(t *testing.T) {
	got := URL("https://example.com/a?page=2&utm_campaign=x&sort=new")
	if !strings.HasSuffix(got, "?page=2&sort=new") {
		t.Errorf("expected remaining params in original order, got %q", got)
	}
}

func TestURLRemovesTrailingSlash(t *testing.T) {
	got := URL("https://example.com/article/")
	if !strings.HasSuffix(got, "/article") {
		t.Errorf("expected trailing slash removed, got %q", got)
	}
}

func TestURLLowercasesSchemeAndHost(t *testing.T) {
	got := URL("HTTPS://EXAMPLE.COM/Article")
	if !strings.HasPrefix(got, "https://example.com") {
		t.Errorf("expected lowercased scheme and host, got %q", got)
	}
	if !strings.Contains(got, "/Article") {
		t.Errorf("expected path case preserved, got %q", got)
	}
}

func TestURLDropsFragment(t *testing.T) {
	got := URL("https://example.com/article#section-2")
	if strings.Contains(got, "#") {
		t.Errorf("expected fragment dropped, got %q", got)
	}
}

func TestURLEquivalentFormsNormalizeEqual(t *testing.T) {
	variants := []string{
		"https://www.example.com/blog/post",
		"HTTPS://example.com/blog/post",
		"https://example.com/blog/post/",
		"https://example.com/blog/post?utm_source=rss",
		"https://example.com/blog/post#top",
	}
	want := URL(variants[0])
	for _, v := range variants[1:] {
		if got := URL(v); got != want {
			t.Errorf("URL(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestURLPreservesPath(t *testing.T) {
	got := URL("https://example.com/blog/2024/ai-news")
	if !strings.Contains(got, "/blog/2024/ai-news") {
		t.Errorf("expected path preserved, got %q", got)
	}
}

func TestExtractNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"monetary", "OpenAI raises $10B in funding", []string{"$10B", "10B"}},
		{"magnitude", "trained on 500M tokens", []string{"500M"}},
		{"year", "the 2025 roadmap", []string{"2025"}},
		{"percentage", "accuracy improved 12.5%", []string{"12.5%"}},
		{"none", "no figures here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractNumbers(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractNumbers(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("match %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractNumbersPatternOrder(t *testing.T) {
	// Patterns run sequentially: the year is reported after the
	// percentage-free monetary match even though it appears first.
	got := ExtractNumbers("In 2024 they raised $5M")
	if len(got) < 3 {
		t.Fatalf("expected at least 3 matches, got %v", got)
	}
	if got[0] != "$5M" {
		t.Errorf("expected monetary match first, got %v", got)
	}
}
