// Package score computes heuristic relevance scores for news items.
package score

import (
	"strings"
	"time"

	"github.com/timelinehq/aitimeline/internal/item"
	"github.com/timelinehq/aitimeline/internal/normalize"
)

// DefaultCredibility is the weight assigned to sources missing from the
// credibility table.
const DefaultCredibility = 5

// CredibilityTable maps source names to credibility weights (0-20).
type CredibilityTable map[string]int

// Of returns the credibility weight for a source, falling back to
// DefaultCredibility for unknown sources.
func (t CredibilityTable) Of(source string) int {
	if w, ok := t[source]; ok {
		return w
	}
	return DefaultCredibility
}

// Scorer scores items against a fixed credibility table and keyword
// list. Both are read-only after construction; Score performs no I/O
// and never mutates the item.
type Scorer struct {
	Credibility CredibilityTable
	Keywords    []string
}

// New creates a Scorer.
func New(credibility CredibilityTable, keywords []string) *Scorer {
	return &Scorer{Credibility: credibility, Keywords: keywords}
}

// Score computes the composite relevance score for an item:
//
//   - recency, 0-30: linear decay to zero at lookbackHours old
//   - source credibility, 0-20: table lookup
//   - numeric signals, 0-10: 3 points per extracted number
//   - keywords, 0-15: 3 points per distinct matching keyword
//
// Components are summed without a final clamp. A future-dated item has a
// negative age and scores above 30 on recency; that matches the scoring
// the rest of the system was tuned against, so it is left unclamped.
func (s *Scorer) Score(it item.Item, referenceTime time.Time, lookbackHours float64) float64 {
	total := 0.0

	hoursOld := it.HoursSince(referenceTime)
	recency := 30 * (1 - hoursOld/lookbackHours)
	if recency > 0 {
		total += recency
	}

	total += float64(s.Credibility.Of(it.Source))

	text := it.Title + " " + it.Summary
	if numbers := normalize.ExtractNumbers(text); len(numbers) > 0 {
		total += minF(10, float64(len(numbers))*3)
	}

	combined := strings.ToLower(text)
	matches := 0
	for _, kw := range s.Keywords {
		if strings.Contains(combined, strings.ToLower(kw)) {
			matches++
		}
	}
	total += minF(15, float64(matches)*3)

	return total
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
