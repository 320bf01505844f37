package ingest

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/timelinehq/aitimeline/internal/item"
	"github.com/timelinehq/aitimeline/internal/textutil"
)

const maxRedditSummaryLen = 200

// fetchReddit pulls hot posts from each configured subreddit via its
// RSS feed, deduplicating by URL across subreddits.
func (g *Ingestor) fetchReddit(now time.Time, maxHours float64) []item.Item {
	var items []item.Item
	seenURLs := make(map[string]struct{})

	parser := gofeed.NewParser()
	parser.Client = g.client
	parser.UserAgent = userAgent

	for _, subreddit := range g.cfg.Sources.Reddit.Subreddits {
		feedURL := fmt.Sprintf("%s/r/%s/hot.rss", g.redditBaseURL, subreddit)
		feed, err := parser.ParseURL(feedURL)
		if err != nil {
			log.Printf("Error fetching Reddit r/%s: %v", subreddit, err)
			continue
		}

		for _, e := range feed.Items {
			if _, ok := seenURLs[e.Link]; ok {
				continue
			}
			seenURLs[e.Link] = struct{}{}

			published := entryTime(e, now)
			if !withinWindow(published, now, maxHours) {
				continue
			}

			title := e.Title
			if title == "" {
				title = "Untitled"
			}

			var authors []string
			if e.Author != nil && e.Author.Name != "" {
				authors = []string{strings.TrimPrefix(e.Author.Name, "/u/")}
			}

			summary := textutil.ClipRunes(textutil.CleanHTML(e.Description), maxRedditSummaryLen)
			if summary == "" {
				summary = "From r/" + subreddit
			}

			items = append(items, item.Item{
				Title:     title,
				URL:       e.Link,
				Source:    "Reddit r/" + subreddit,
				Published: published,
				Summary:   summary,
				Authors:   authors,
			})
		}
	}

	log.Printf("Fetched %d posts from Reddit", len(items))
	return items
}
