// Package fetch enriches items with full article text extracted via
// readability.
package fetch

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/timelinehq/aitimeline/internal/item"
)

const maxContentWords = 500

// Result holds the results of a content fetch run.
type Result struct {
	Fetched int
	Skipped int
	Failed  int
}

// ContentFetcher fetches full article text via HTTP + readability extraction.
type ContentFetcher struct {
	client *http.Client
}

// NewContentFetcher creates a new content fetcher.
func NewContentFetcher(timeout time.Duration) *ContentFetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &ContentFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Enrich fills in Content for items that lack it. Once a domain returns
// an HTTP error, the remaining items from that domain are skipped.
func (f *ContentFetcher) Enrich(items []item.Item) *Result {
	result := &Result{}
	failedDomains := make(map[string]struct{})

	for i := range items {
		if items[i].Content != "" || items[i].URL == "" {
			result.Skipped++
			continue
		}

		u, _ := url.Parse(items[i].URL)
		domain := ""
		if u != nil {
			domain = strings.ToLower(u.Host)
		}

		if _, failed := failedDomains[domain]; failed {
			result.Failed++
			continue
		}

		content, httpErr := f.fetchArticleContent(items[i].URL)
		if httpErr != nil {
			result.Failed++
			if domain != "" {
				failedDomains[domain] = struct{}{}
			}
			log.Printf("HTTP error for %s, skipping remaining from %s", items[i].URL, domain)
			continue
		}

		if content != "" {
			items[i].Content = content
			result.Fetched++
		} else {
			result.Failed++
		}
	}

	log.Printf("Content fetch complete: %d fetched, %d failed, %d skipped",
		result.Fetched, result.Failed, result.Skipped)
	return result
}

func (f *ContentFetcher) fetchArticleContent(articleURL string) (string, error) {
	req, err := http.NewRequest("GET", articleURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "aitimeline/1.0 (news aggregator)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil // connection error, not HTTP error
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &httpError{code: resp.StatusCode}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil
	}

	parsedURL, _ := url.Parse(articleURL)
	article, err := readability.FromReader(strings.NewReader(string(bodyBytes)), parsedURL)
	if err != nil {
		return "", nil
	}

	text := strings.TrimSpace(article.TextContent)
	words := strings.Fields(text)
	if len(words) > maxContentWords {
		text = strings.Join(words[:maxContentWords], " ") + "..."
	}
	if len(text) > 100 {
		return text, nil
	}
	return "", nil
}

type httpError struct {
	code int
}

func (e *httpError) Error() string {
	return http.StatusText(e.code)
}
