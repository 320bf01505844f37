// Package prompt builds LLM prompts for timeline posts and validates
// the generated output for each publishing surface.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/timelinehq/aitimeline/internal/item"
	"github.com/timelinehq/aitimeline/internal/textutil"
)

// SystemPrompt defines the editorial voice for generated posts. Links
// must be embedded inline inside descriptive phrases.
const SystemPrompt = `You are an expert AI industry analyst writing daily timeline posts. Your posts summarize the most significant AI and technology developments with precision, insight, and a sense of historical perspective.

## CRITICAL RULE - INLINE LINKS

Every source link MUST be embedded inline within descriptive text. The link text should be COMMENTARY on what the source contains, a phrase that tells the reader what they'll find if they click.

CORRECT examples:
- "Apple researchers have demonstrated that [hyperparameter sweeps are scale-invariant](https://arxiv.org/...)"
- "European banks are preparing a [six-figure workforce contraction](https://techcrunch.com/...)"
- "Anthropic is [bypassing cloud providers entirely](https://example.com/...) by purchasing chips directly"

WRONG examples (NEVER do these):
- "European banks cut jobs. [TechCrunch](url)" - link at end of sentence
- "Read more at [ArXiv](url)" - generic link text
- "[Link](url)" or "[Source](url)" - meaningless link text

The link text should be the most interesting or specific phrase from the story, the hook that makes someone want to click.

## STRUCTURE

1. **Headline**: Start with a catchy, editorial-style headline on its own line, formatted as a markdown H1 (# Headline). The headline should:
   - Be 6-12 words, evocative and memorable
   - Capture the day's theme or most striking development
   - Examples: "The Week AI Came Home", "When Robots Learn to Fold"

2. **Opening**: After the headline, start with a bold, declarative sentence that captures the day's theme or most significant development.

3. **Body**: 6-10 micro-paragraphs, each:
   - Covers ONE distinct development or story
   - Is 2-4 sentences long
   - Has 1-2 inline links embedded naturally in the prose
   - Uses precise language and specific details (names, numbers, dates)
   - Avoids hype words like "revolutionary," "game-changing," or "groundbreaking"

4. **Closing**: A memorable single sentence connecting today's news to a broader historical arc or trend.

## TONE

Authoritative but accessible. You're chronicling history, not selling products. Be direct and factual, connecting developments to their broader significance. Dense with information but never breathless.

## FORMATTING

- No bullet points or numbered lists
- Paragraphs separated by blank lines
- Links are inline markdown: [descriptive text](URL)
- No emojis
- Target length: 800-1200 words`

const (
	maxTweetLen      = 280
	minLinkedInLen   = 800
	maxLinkedInLen   = 1500
	maxPromptSummary = 300
)

// FormatItems formats items as a numbered list for the user prompt.
func FormatItems(items []item.Item) string {
	blocks := make([]string, 0, len(items))

	for i, it := range items {
		lines := []string{
			fmt.Sprintf("%d. **%s**", i+1, it.Title),
			"   - Source: " + it.Source,
			"   - URL: " + it.URL,
			"   - Published: " + it.Published.UTC().Format("2006-01-02 15:04 UTC"),
		}

		if it.Summary != "" {
			summary := it.Summary
			if clipped := textutil.ClipRunes(summary, maxPromptSummary); clipped != summary {
				summary = clipped + "..."
			}
			lines = append(lines, "   - Summary: "+summary)
		}

		if len(it.Authors) > 0 {
			authors := it.Authors
			if len(authors) > 3 {
				authors = authors[:3]
			}
			lines = append(lines, "   - Authors: "+strings.Join(authors, ", "))
		}

		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	return strings.Join(blocks, "\n\n")
}

// FormatDateForTitle formats a date the way post titles expect, e.g.
// "Thursday, January 2, 2025".
func FormatDateForTitle(t time.Time) string {
	return fmt.Sprintf("%s, %s %d, %d", t.Weekday(), t.Month(), t.Day(), t.Year())
}

// Build returns the system and user prompts for the given variant.
// Variants: "full" (blog article), "linkedin", "x". Unknown variants
// fall back to "full".
func Build(items []item.Item, variant string, date time.Time) (system, user string) {
	formattedDate := FormatDateForTitle(date)
	formattedItems := FormatItems(items)

	var instructions string
	switch variant {
	case "linkedin":
		instructions = `Write a LINKEDIN post following the style guidelines. Remember:
- No H1 headline; open with a strong hook line instead
- Plain URLs only, LinkedIn does not render markdown links
- Cover the most significant items in short paragraphs
- Target length: 800-1500 characters`
	case "x":
		instructions = `Write a single post for X following the style guidelines. Remember:
- Maximum 280 characters
- Lead with the single most significant development
- One plain URL at most`
	default:
		instructions = `Write a FULL blog post following the style guidelines. Remember:
- Start with a catchy headline as H1 (# Headline)
- Each link must be INLINE within a descriptive phrase (not at the end of paragraphs)
- The link text should describe what the reader will find
- Cover all items with 2-4 sentences each
- End with a memorable closing line about broader implications`
	}

	user = fmt.Sprintf(`Today's date is: %s

Here are the top AI/tech news items to cover. For each item, embed the URL as an inline link within descriptive text:

%s

---

%s

Write it now.`, formattedDate, formattedItems, instructions)

	return SystemPrompt, user
}

// ValidateXOutput checks that text fits in a single post on X.
func ValidateXOutput(text string) (bool, string) {
	if n := len([]rune(text)); n > maxTweetLen {
		return false, fmt.Sprintf("post exceeds 280 characters (%d)", n)
	}
	return true, ""
}

// ValidateLinkedInOutput checks that text fits LinkedIn's sweet spot.
func ValidateLinkedInOutput(text string) (bool, string) {
	n := len([]rune(text))
	if n < minLinkedInLen {
		return false, fmt.Sprintf("post too short for LinkedIn (%d chars, want at least %d)", n, minLinkedInLen)
	}
	if n > maxLinkedInLen {
		return false, fmt.Sprintf("post too long for LinkedIn (%d chars, want at most %d)", n, maxLinkedInLen)
	}
	return true, ""
}

// BuildThread splits a full post into a numbered X thread. Each tweet
// carries an "i/n " prefix and stays within the length limit.
func BuildThread(fullPost string) []string {
	paragraphs := splitParagraphs(fullPost)
	if len(paragraphs) == 0 {
		return nil
	}

	// Reserve room for the numbering prefix, e.g. "12/12 ".
	budget := maxTweetLen - 8

	var chunks []string
	for _, p := range paragraphs {
		chunks = append(chunks, splitToLength(p, budget)...)
	}

	thread := make([]string, len(chunks))
	for i, c := range chunks {
		thread[i] = fmt.Sprintf("%d/%d %s", i+1, len(chunks), c)
	}
	return thread
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "# ")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitToLength breaks text at word boundaries into chunks of at most
// max characters.
func splitToLength(text string, max int) []string {
	words := strings.Fields(text)
	var chunks []string
	var current strings.Builder

	for _, w := range words {
		if current.Len() > 0 && current.Len()+1+len(w) > max {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(w)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
