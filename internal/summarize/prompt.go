package summarize

import (
	"encoding/json"
	"fmt"
	"strings"

	"novapulse/internal/news"
)

const promptTemplate = `You are an expert AI news analyst writing a WhatsApp-friendly news digest.

I will give you a list of article titles and their RSS descriptions from the "%s" category.

For each article, write a concise, punchy 1-2 line bullet-point summary that:
- Captures the KEY facts (who, what, numbers, impact)
- Is written in professional news style (no fluff, no opinions)
- Can be understood without clicking the link
- Uses plain text (no markdown, no HTML, no bold/italic)

Respond ONLY with a valid JSON array of objects, one per article, in this exact format:
[
  {"index": 0, "summary": "Your 1-2 line summary here"},
  {"index": 1, "summary": "Your 1-2 line summary here"}
]

Do NOT include anything outside the JSON array. No explanation, no preamble.

Here are the articles:

%s`

func buildPrompt(categoryLabel string, articles []news.Article) string {
	var lines []string
	for i, a := range articles {
		lines = append(lines, fmt.Sprintf("[%d] Title: %s\n    Description: %s\n    Source: %s",
			i, a.Title, a.Summary, a.Source))
	}
	return fmt.Sprintf(promptTemplate, categoryLabel, strings.Join(lines, "\n\n"))
}

type indexedSummary struct {
	Index   int    `json:"index"`
	Summary string `json:"summary"`
}

// parseSummaries decodes the model's JSON array, tolerating markdown code
// fences around the payload.
func parseSummaries(raw string) (map[int]string, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		if _, rest, found := strings.Cut(cleaned, "\n"); found {
			cleaned = rest
		}
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var items []indexedSummary
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("parse summaries: %w", err)
	}

	summaries := make(map[int]string, len(items))
	for _, item := range items {
		summaries[item.Index] = item.Summary
	}
	return summaries, nil
}
