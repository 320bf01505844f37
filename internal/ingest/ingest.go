// Package ingest fetches raw news items from RSS feeds, arXiv, Hacker
// News, and Reddit.
package ingest

import (
	"log"
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"github.com/timelinehq/aitimeline/internal/config"
	"github.com/timelinehq/aitimeline/internal/item"
)

const (
	requestTimeout = 15 * time.Second
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Ingestor fetches items from all configured sources.
type Ingestor struct {
	cfg    *config.Config
	client *http.Client

	// Overridable in tests.
	arxivBaseURL  string
	hnBaseURL     string
	redditBaseURL string
}

// New creates an Ingestor for the given configuration.
func New(cfg *config.Config) *Ingestor {
	return &Ingestor{
		cfg:           cfg,
		client:        &http.Client{Timeout: requestTimeout},
		arxivBaseURL:  "http://export.arxiv.org/api/query",
		hnBaseURL:     "https://hn.algolia.com/api/v1/search",
		redditBaseURL: "https://www.reddit.com",
	}
}

// FetchAll fetches items from every enabled source, keeping only items
// published within maxHours of now.
func (g *Ingestor) FetchAll(maxHours float64) []item.Item {
	now := time.Now().UTC()
	log.Printf("Fetching sources with %.0fh lookback window", maxHours)

	var all []item.Item
	all = append(all, g.fetchFeeds(now, maxHours)...)

	if g.cfg.Sources.Arxiv.Enabled {
		all = append(all, g.fetchArxiv(now, maxHours)...)
	}
	if g.cfg.Sources.HackerNews.Enabled {
		all = append(all, g.fetchHackerNews(now, maxHours)...)
	}
	if g.cfg.Sources.Reddit.Enabled {
		all = append(all, g.fetchReddit(now, maxHours)...)
	}

	log.Printf("Total items fetched: %d", len(all))
	return all
}

// entryTime extracts the best publication time from a feed entry,
// defaulting to now when nothing parses.
func entryTime(e *gofeed.Item, now time.Time) time.Time {
	if e.PublishedParsed != nil {
		return e.PublishedParsed.UTC()
	}
	if e.UpdatedParsed != nil {
		return e.UpdatedParsed.UTC()
	}
	for _, raw := range []string{e.Published, e.Updated} {
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t.UTC()
		}
	}
	return now
}

// withinWindow reports whether published falls inside the lookback
// window ending at now.
func withinWindow(published, now time.Time, maxHours float64) bool {
	return now.Sub(published).Hours() <= maxHours
}
