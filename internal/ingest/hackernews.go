package ingest

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/araddon/dateparse"

	"github.com/timelinehq/aitimeline/internal/item"
)

// fetchHackerNews searches the Algolia HN API for each configured
// keyword, deduplicating stories by ID across queries.
func (g *Ingestor) fetchHackerNews(now time.Time, maxHours float64) []item.Item {
	var items []item.Item
	seenIDs := make(map[string]struct{})
	minPoints := g.cfg.Sources.HackerNews.MinPoints
	cutoff := now.Add(-time.Duration(maxHours * float64(time.Hour))).Unix()

	for _, keyword := range g.cfg.Sources.HackerNews.Keywords {
		params := url.Values{
			"query":          {keyword},
			"tags":           {"story"},
			"numericFilters": {fmt.Sprintf("created_at_i>%d", cutoff)},
		}

		resp, err := g.client.Get(g.hnBaseURL + "?" + params.Encode())
		if err != nil {
			log.Printf("Error fetching Hacker News for keyword %q: %v", keyword, err)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			log.Printf("Hacker News HTTP error for keyword %q: %d", keyword, resp.StatusCode)
			continue
		}

		var result struct {
			Hits []struct {
				ObjectID    string `json:"objectID"`
				Title       string `json:"title"`
				URL         string `json:"url"`
				Points      int    `json:"points"`
				NumComments int    `json:"num_comments"`
				Author      string `json:"author"`
				CreatedAt   string `json:"created_at"`
			} `json:"hits"`
		}
		err = json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if err != nil {
			log.Printf("Error decoding Hacker News response for keyword %q: %v", keyword, err)
			continue
		}

		for _, hit := range result.Hits {
			if _, ok := seenIDs[hit.ObjectID]; ok {
				continue
			}
			seenIDs[hit.ObjectID] = struct{}{}

			if hit.Points < minPoints {
				continue
			}

			published := now
			if hit.CreatedAt != "" {
				if t, err := dateparse.ParseAny(hit.CreatedAt); err == nil {
					published = t.UTC()
				}
			}

			storyURL := hit.URL
			if storyURL == "" {
				storyURL = "https://news.ycombinator.com/item?id=" + hit.ObjectID
			}

			title := hit.Title
			if title == "" {
				title = "Untitled"
			}

			var authors []string
			if hit.Author != "" {
				authors = []string{hit.Author}
			}

			items = append(items, item.Item{
				Title:     title,
				URL:       storyURL,
				Source:    "Hacker News",
				Published: published,
				Summary:   fmt.Sprintf("Points: %d, Comments: %d", hit.Points, hit.NumComments),
				Authors:   authors,
			})
		}
	}

	log.Printf("Fetched %d stories from Hacker News", len(items))
	return items
}
