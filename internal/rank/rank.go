// Package rank orchestrates the dedupe -> score -> truncate pipeline
// that selects the top items for a post.
package rank

import (
	"log"
	"sort"
	"time"

	"github.com/timelinehq/aitimeline/internal/dedupe"
	"github.com/timelinehq/aitimeline/internal/item"
	"github.com/timelinehq/aitimeline/internal/score"
)

// Ranker selects the highest-scoring unique items from a raw batch.
type Ranker struct {
	deduper *dedupe.Deduplicator
	scorer  *score.Scorer
}

// New creates a Ranker.
func New(deduper *dedupe.Deduplicator, scorer *score.Scorer) *Ranker {
	return &Ranker{deduper: deduper, scorer: scorer}
}

// Process deduplicates, scores, and ranks items, returning at most topN
// of them in descending score order. It never errors and never pads:
// fewer survivors than topN simply means a shorter result.
func (r *Ranker) Process(items []item.Item, topN int, lookbackHours float64) []item.Item {
	return r.ProcessAt(items, topN, lookbackHours, time.Now().UTC())
}

// ProcessAt is Process with an explicit reference time. The reference
// time is shared across all items in the pass so relative recency stays
// consistent.
func (r *Ranker) ProcessAt(items []item.Item, topN int, lookbackHours float64, referenceTime time.Time) []item.Item {
	unique := r.deduper.Deduplicate(items)

	for i := range unique {
		unique[i].Score = r.scorer.Score(unique[i], referenceTime, lookbackHours)
	}

	// Stable sort keeps deduplicated-list order for equal scores.
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Score > unique[j].Score
	})

	if len(unique) > topN {
		unique = unique[:topN]
	}

	if len(unique) > 0 {
		log.Printf("Ranked %d items, selected top %d (score range: %.1f - %.1f)",
			len(items), len(unique), unique[len(unique)-1].Score, unique[0].Score)
	}
	return unique
}
