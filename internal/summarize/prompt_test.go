package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novapulse/internal/news"
)

func TestBuildPrompt(t *testing.T) {
	articles := []news.Article{
		{Title: "First", Summary: "desc one", Source: "https://a/feed"},
		{Title: "Second", Summary: "desc two", Source: "https://b/feed"},
	}

	prompt := buildPrompt("Business & Funding", articles)

	assert.Contains(t, prompt, `"Business & Funding" category`)
	assert.Contains(t, prompt, "[0] Title: First")
	assert.Contains(t, prompt, "[1] Title: Second")
	assert.Contains(t, prompt, "Description: desc two")
}

func TestParseSummaries(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected map[int]string
		wantErr  bool
	}{
		{
			name:     "plain JSON array",
			raw:      `[{"index": 0, "summary": "one"}, {"index": 1, "summary": "two"}]`,
			expected: map[int]string{0: "one", 1: "two"},
		},
		{
			name: "fenced JSON array",
			raw: "```json\n" +
				`[{"index": 0, "summary": "fenced"}]` + "\n```",
			expected: map[int]string{0: "fenced"},
		},
		{
			name: "fenced without language tag",
			raw: "```\n" +
				`[{"index": 2, "summary": "bare fence"}]` + "\n```",
			expected: map[int]string{2: "bare fence"},
		},
		{
			name:    "prose instead of JSON",
			raw:     "Sure! Here are your summaries:",
			wantErr: true,
		},
		{
			name:    "truncated JSON",
			raw:     `[{"index": 0, "summary": "oops"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSummaries(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
