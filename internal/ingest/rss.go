package ingest

import (
	"log"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/timelinehq/aitimeline/internal/item"
	"github.com/timelinehq/aitimeline/internal/textutil"
)

const maxSummaryLen = 500

// fetchFeeds pulls items from all configured RSS/Atom feeds.
func (g *Ingestor) fetchFeeds(now time.Time, maxHours float64) []item.Item {
	var items []item.Item

	parser := gofeed.NewParser()
	parser.Client = g.client
	parser.UserAgent = userAgent

	for _, fc := range g.cfg.Sources.Feeds {
		feed, err := parser.ParseURL(fc.URL)
		if err != nil {
			log.Printf("Error fetching RSS feed %s: %v", fc.Name, err)
			continue
		}

		for _, e := range feed.Items {
			published := entryTime(e, now)
			if !withinWindow(published, now, maxHours) {
				continue
			}

			summary := e.Description
			if summary == "" {
				summary = e.Content
			}
			summary = textutil.ClipRunes(textutil.CleanHTML(summary), maxSummaryLen)

			title := e.Title
			if title == "" {
				title = "Untitled"
			}

			items = append(items, item.Item{
				Title:     title,
				URL:       e.Link,
				Source:    fc.Name,
				Published: published,
				Summary:   summary,
			})
		}
	}

	log.Printf("Fetched %d items from RSS feeds", len(items))
	return items
}
