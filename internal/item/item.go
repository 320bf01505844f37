package item

import "time"

// Item represents a single news item from any source: an RSS entry, an
// arXiv paper, a Hacker News story, or a Reddit post.
//
// URL always holds the address exactly as the source reported it;
// normalization for duplicate detection never writes back into the field.
// Score starts at zero and is written exactly once, by the ranker.
type Item struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	Published time.Time `json:"published"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content,omitempty"`
	Authors   []string  `json:"authors"`
	Score     float64   `json:"score"`
}

const maxContentExport = 500

// ForExport returns a copy suitable for serialization into sources.json,
// with content truncated to 500 characters.
func (it Item) ForExport() Item {
	out := it
	if len(out.Content) > maxContentExport {
		out.Content = out.Content[:maxContentExport]
	}
	return out
}

// HoursSince returns the age of the item in hours relative to ref.
// Both timestamps are compared in UTC. Future-dated items yield a
// negative age.
func (it Item) HoursSince(ref time.Time) float64 {
	return ref.UTC().Sub(it.Published.UTC()).Hours()
}
