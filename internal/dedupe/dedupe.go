// Package dedupe removes duplicate news items in two stages: exact
// normalized-URL matching, then fuzzy title matching with credibility
// as the tie breaker.
package dedupe

import (
	"log"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/timelinehq/aitimeline/internal/item"
	"github.com/timelinehq/aitimeline/internal/normalize"
	"github.com/timelinehq/aitimeline/internal/score"
)

// DefaultThreshold is the similarity ratio at or above which two titles
// are considered the same story.
const DefaultThreshold = 0.85

// Deduplicator removes duplicate items. The credibility table decides
// which copy of a duplicated story survives.
type Deduplicator struct {
	credibility score.CredibilityTable
	threshold   float64
}

// New creates a Deduplicator. A non-positive threshold falls back to
// DefaultThreshold.
func New(credibility score.CredibilityTable, threshold float64) *Deduplicator {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Deduplicator{credibility: credibility, threshold: threshold}
}

// TitleSimilarity returns the Ratcliff/Obershelp similarity ratio in
// [0, 1] between two titles, case-folded and trimmed.
func TitleSimilarity(a, b string) float64 {
	t1 := strings.TrimSpace(strings.ToLower(a))
	t2 := strings.TrimSpace(strings.ToLower(b))
	m := difflib.NewMatcher(strings.Split(t1, ""), strings.Split(t2, ""))
	return m.Ratio()
}

// Deduplicate returns items with duplicates removed. Output order is not
// guaranteed to match input order: when a later item from a more
// credible source displaces an earlier near-duplicate, the replacement
// moves to the end of the list.
func (d *Deduplicator) Deduplicate(items []item.Item) []item.Item {
	if len(items) == 0 {
		return nil
	}

	// Stage 1: exact URL dedup, first seen wins.
	seen := make(map[string]struct{}, len(items))
	urlUnique := make([]item.Item, 0, len(items))
	for _, it := range items {
		key := normalize.URL(it.URL)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		urlUnique = append(urlUnique, it)
	}

	// Stage 2: fuzzy title dedup against the accumulating output.
	// Only the first matching entry is consulted; with multiple
	// near-duplicate clusters the result can depend on input order,
	// which is inherent to the heuristic.
	out := make([]item.Item, 0, len(urlUnique))
	for _, it := range urlUnique {
		duplicate := false
		for i, existing := range out {
			if TitleSimilarity(it.Title, existing.Title) < d.threshold {
				continue
			}
			duplicate = true
			if d.credibility.Of(it.Source) > d.credibility.Of(existing.Source) {
				out = append(out[:i], out[i+1:]...)
				out = append(out, it)
				log.Printf("Replaced %q (%s) with %q (%s)",
					truncate(existing.Title, 50), existing.Source,
					truncate(it.Title, 50), it.Source)
			}
			break
		}
		if !duplicate {
			out = append(out, it)
		}
	}

	log.Printf("Deduplication complete: %d -> %d items (%d duplicates removed)",
		len(items), len(out), len(items)-len(out))
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
