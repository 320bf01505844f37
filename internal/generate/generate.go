// Package generate turns ranked items into a published post via an LLM
// provider and writes the output files.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/timelinehq/aitimeline/internal/item"
	"github.com/timelinehq/aitimeline/internal/llm"
	"github.com/timelinehq/aitimeline/internal/prompt"
)

// Article is a generated post plus the items it was built from.
type Article struct {
	Markdown    string
	Sources     []item.Item
	GeneratedAt time.Time
}

// Generator produces articles from ranked items.
type Generator struct {
	provider  llm.Provider
	maxTokens int
}

// New creates a Generator.
func New(provider llm.Provider, maxTokens int) *Generator {
	return &Generator{provider: provider, maxTokens: maxTokens}
}

// Generate builds the prompt for the given variant and asks the
// provider for an article.
func (g *Generator) Generate(ctx context.Context, items []item.Item, variant string, date time.Time) (*Article, error) {
	if g.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no items to generate from")
	}

	system, user := prompt.Build(items, variant, date)
	text, err := g.provider.Generate(ctx, system, user, g.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("generating article: %w", err)
	}

	return &Article{
		Markdown:    text,
		Sources:     items,
		GeneratedAt: date,
	}, nil
}

// sourcesFile is the JSON shape written next to the article.
type sourcesFile struct {
	GeneratedAt string      `json:"generated_at"`
	ItemCount   int         `json:"item_count"`
	Items       []item.Item `json:"items"`
}

// Save writes the article markdown and sources metadata to outputDir,
// returning the written paths keyed by output type.
func Save(a *Article, outputDir string) (map[string]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	saved := make(map[string]string)

	articlePath := filepath.Join(outputDir, "today.md")
	if err := os.WriteFile(articlePath, []byte(a.Markdown), 0o644); err != nil {
		return nil, fmt.Errorf("writing article: %w", err)
	}
	saved["article"] = articlePath
	log.Printf("Saved article to %s", articlePath)

	exported := make([]item.Item, len(a.Sources))
	for i, it := range a.Sources {
		exported[i] = it.ForExport()
	}

	data, err := json.MarshalIndent(sourcesFile{
		GeneratedAt: a.GeneratedAt.Format(time.RFC3339),
		ItemCount:   len(exported),
		Items:       exported,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling sources: %w", err)
	}

	sourcesPath := filepath.Join(outputDir, "sources.json")
	if err := os.WriteFile(sourcesPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing sources: %w", err)
	}
	saved["sources"] = sourcesPath
	log.Printf("Saved sources to %s", sourcesPath)

	return saved, nil
}
