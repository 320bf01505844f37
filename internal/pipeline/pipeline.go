// Package pipeline orchestrates the full ingest-rank-generate-save run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/timelinehq/aitimeline/internal/config"
	"github.com/timelinehq/aitimeline/internal/dedupe"
	"github.com/timelinehq/aitimeline/internal/fetch"
	"github.com/timelinehq/aitimeline/internal/generate"
	"github.com/timelinehq/aitimeline/internal/ingest"
	"github.com/timelinehq/aitimeline/internal/llm"
	"github.com/timelinehq/aitimeline/internal/rank"
	"github.com/timelinehq/aitimeline/internal/score"
	"github.com/timelinehq/aitimeline/internal/store"
	"github.com/timelinehq/aitimeline/internal/textutil"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	DateID string
	Steps  []StepResult
}

// Options control a pipeline run.
type Options struct {
	Mode         string // daily, realtime, or weekly
	TopN         int    // 0 uses the configured default
	FetchContent bool
	OutputDir    string // "" uses the configured default
}

// Pipeline orchestrates the ingest-rank-generate-save run.
type Pipeline struct {
	cfg      *config.Config
	db       *store.DB
	provider llm.Provider
}

// New creates a new pipeline.
func New(cfg *config.Config, db *store.DB) *Pipeline {
	gen := cfg.Generation
	provider := llm.CreateProvider(
		gen.Provider,
		gen.OpenAIModel,
		gen.OpenAIKeyEnv,
		gen.AnthropicModel,
		gen.AnthropicKeyEnv,
	)

	return &Pipeline{
		cfg:      cfg,
		db:       db,
		provider: provider,
	}
}

// Run executes the full pipeline for today.
func (p *Pipeline) Run(ctx context.Context, opts Options) *Result {
	dateID := store.Today()
	r := &Result{DateID: dateID}

	lookback := p.cfg.Processing.Lookback.Hours(opts.Mode)
	topN := opts.TopN
	if topN <= 0 {
		topN = p.cfg.Processing.TopN
	}

	// Step 1: Ingest
	log.Println("Step 1/4: Ingesting sources...")
	raw := ingest.New(p.cfg).FetchAll(lookback)
	r.Steps = append(r.Steps, StepResult{
		Name:    "Ingest",
		Summary: fmt.Sprintf("Fetched %d items (%.0fh window)", len(raw), lookback),
	})
	if len(raw) == 0 {
		r.Steps = append(r.Steps, StepResult{
			Name: "Rank",
			Err:  fmt.Errorf("no items fetched, nothing to rank"),
		})
		return r
	}

	// Step 2: Rank
	log.Println("Step 2/4: Ranking items...")
	ranker := rank.New(
		dedupe.New(p.cfg.Credibility, p.cfg.Processing.SimilarityThreshold),
		score.New(p.cfg.Credibility, p.cfg.Keywords),
	)
	top := ranker.Process(raw, topN, lookback)
	r.Steps = append(r.Steps, StepResult{
		Name:    "Rank",
		Summary: fmt.Sprintf("Selected top %d of %d items", len(top), len(raw)),
	})
	if len(top) == 0 {
		r.Steps = append(r.Steps, StepResult{
			Name: "Generate",
			Err:  fmt.Errorf("no items survived ranking"),
		})
		return r
	}

	// Optional content enrichment for the selected items only.
	if opts.FetchContent {
		log.Println("Fetching full article content...")
		fr := fetch.NewContentFetcher(0).Enrich(top)
		r.Steps = append(r.Steps, StepResult{
			Name:    "Fetch",
			Summary: fmt.Sprintf("Fetched content for %d items, %d failed", fr.Fetched, fr.Failed),
		})
	}

	// Step 3: Generate
	log.Println("Step 3/4: Generating article...")
	article, err := generate.New(p.provider, p.cfg.Generation.MaxTokens).
		Generate(ctx, top, "full", runDate(p.cfg.Processing.Timezone))
	if err != nil {
		r.Steps = append(r.Steps, StepResult{Name: "Generate", Err: err})
		return r
	}
	r.Steps = append(r.Steps, StepResult{
		Name:    "Generate",
		Summary: fmt.Sprintf("Generated %d-word article", len(strings.Fields(article.Markdown))),
	})

	// Step 4: Save
	log.Println("Step 4/4: Saving outputs...")
	step := p.save(article, dateID, opts)
	r.Steps = append(r.Steps, step)

	return r
}

// runDate returns the current time in the configured timezone, so the
// post date matches the publisher's local day rather than the host's.
func runDate(tz string) time.Time {
	if tz == "" {
		return time.Now().UTC()
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Invalid timezone %q, falling back to UTC: %v", tz, err)
		return time.Now().UTC()
	}
	return time.Now().In(loc)
}

// DryRun shows what would be done without fetching or generating.
func (p *Pipeline) DryRun(opts Options) *Result {
	dateID := store.Today()
	r := &Result{DateID: dateID}

	lookback := p.cfg.Processing.Lookback.Hours(opts.Mode)
	topN := opts.TopN
	if topN <= 0 {
		topN = p.cfg.Processing.TopN
	}

	sources := len(p.cfg.Sources.Feeds)
	if p.cfg.Sources.Arxiv.Enabled {
		sources += len(p.cfg.Sources.Arxiv.Categories)
	}
	if p.cfg.Sources.HackerNews.Enabled {
		sources++
	}
	if p.cfg.Sources.Reddit.Enabled {
		sources += len(p.cfg.Sources.Reddit.Subreddits)
	}

	r.Steps = append(r.Steps, StepResult{
		Name:    "Ingest",
		Summary: fmt.Sprintf("[dry-run] Would fetch %d sources with %.0fh window", sources, lookback),
	})
	r.Steps = append(r.Steps, StepResult{
		Name:    "Rank",
		Summary: fmt.Sprintf("[dry-run] Would select top %d items", topN),
	})

	if p.provider != nil {
		r.Steps = append(r.Steps, StepResult{
			Name:    "Generate",
			Summary: "[dry-run] LLM provider configured",
		})
	} else {
		r.Steps = append(r.Steps, StepResult{
			Name:    "Generate",
			Summary: "[dry-run] WARNING: no LLM provider configured",
		})
	}

	existing, _ := p.db.GetPost(dateID)
	if existing != nil {
		r.Steps = append(r.Steps, StepResult{
			Name:    "Save",
			Summary: fmt.Sprintf("[dry-run] Post for %s already exists and would be overwritten", dateID),
		})
	} else {
		r.Steps = append(r.Steps, StepResult{
			Name:    "Save",
			Summary: fmt.Sprintf("[dry-run] Would save post for %s", dateID),
		})
	}

	return r
}

func (p *Pipeline) save(article *generate.Article, dateID string, opts Options) StepResult {
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = p.cfg.Output.Dir
	}

	saved, err := generate.Save(article, outputDir)
	if err != nil {
		return StepResult{Name: "Save", Err: err}
	}

	minutes := textutil.ReadingTime(article.Markdown)
	headline := ExtractHeadline(article.Markdown)

	if _, err := p.db.SavePost(dateID, opts.Mode, headline, article.Markdown, minutes, article.Sources); err != nil {
		return StepResult{Name: "Save", Err: err}
	}

	return StepResult{
		Name: "Save",
		Summary: fmt.Sprintf("Saved %s and archived post for %s (%d min read)",
			filepath.Base(saved["article"]), dateID, minutes),
	}
}

// ExtractHeadline returns the first H1 line of a markdown document, or
// its first non-empty line when no H1 exists.
func ExtractHeadline(markdown string) string {
	var fallback string
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
		if fallback == "" {
			fallback = line
		}
	}
	return fallback
}

// Mode normalizes a mode flag value, defaulting to daily.
func Mode(s string) (string, error) {
	switch s {
	case "", "daily":
		return "daily", nil
	case "realtime", "weekly":
		return s, nil
	default:
		return "", fmt.Errorf("invalid mode %q (want daily, realtime, or weekly)", s)
	}
}
