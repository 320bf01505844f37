package ingest

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/timelinehq/aitimeline/internal/item"
	"github.com/timelinehq/aitimeline/internal/textutil"
)

const maxArxivAuthors = 5

// fetchArxiv pulls recent papers from the arXiv Atom API, one query per
// configured category, newest first.
func (g *Ingestor) fetchArxiv(now time.Time, maxHours float64) []item.Item {
	var items []item.Item

	parser := gofeed.NewParser()

	for _, category := range g.cfg.Sources.Arxiv.Categories {
		params := url.Values{
			"search_query": {"cat:" + category},
			"start":        {"0"},
			"max_results":  {fmt.Sprintf("%d", g.cfg.Sources.Arxiv.MaxResults)},
			"sortBy":       {"submittedDate"},
			"sortOrder":    {"descending"},
		}

		req, err := http.NewRequest("GET", g.arxivBaseURL+"?"+params.Encode(), nil)
		if err != nil {
			log.Printf("Error building arXiv request for %s: %v", category, err)
			continue
		}

		resp, err := g.client.Do(req)
		if err != nil {
			log.Printf("Error fetching arXiv category %s: %v", category, err)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			log.Printf("arXiv HTTP error for %s: %d", category, resp.StatusCode)
			continue
		}

		feed, err := parser.Parse(resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Printf("Error parsing arXiv response for %s: %v", category, err)
			continue
		}

		for _, e := range feed.Items {
			// Papers without a parseable date are skipped, unlike feed
			// items, where metadata is generally reliable.
			if e.PublishedParsed == nil && e.Published == "" {
				continue
			}
			published := entryTime(e, now)
			if !withinWindow(published, now, maxHours) {
				continue
			}

			var authors []string
			for _, a := range e.Authors {
				if a.Name != "" {
					authors = append(authors, a.Name)
				}
			}
			if len(authors) > maxArxivAuthors {
				authors = authors[:maxArxivAuthors]
			}

			summary := textutil.ClipRunes(textutil.CleanHTML(e.Description), maxSummaryLen)

			items = append(items, item.Item{
				Title:     strings.Join(strings.Fields(e.Title), " "),
				URL:       e.Link,
				Source:    "arXiv",
				Published: published,
				Summary:   summary,
				Authors:   authors,
			})
		}
	}

	log.Printf("Fetched %d papers from arXiv", len(items))
	return items
}
