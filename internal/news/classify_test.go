package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novapulse/internal/category"
)

func testRegistry(t *testing.T) *category.Registry {
	t.Helper()
	reg, err := category.New(map[string]*category.Category{
		"business": {
			Emoji: "💰", Title: "Business & Funding",
			Keywords: []string{"funding", "raises", "round", "venture capital"},
		},
		"developer_tools": {
			Emoji: "🛠️", Title: "Developer Tools",
			Keywords: []string{"api", "sdk", "open source"},
		},
		"products": {
			Emoji: "📱", Title: "Products & Apps",
			Keywords: []string{"launches", "chatbot"},
		},
	}, []string{"business", "developer_tools", "products"}, nil)
	require.NoError(t, err)
	return reg
}

func TestClassifyTotality(t *testing.T) {
	c := NewClassifier(testRegistry(t))

	tests := []struct {
		name     string
		article  Article
		expected []string
	}{
		{
			name:     "empty text falls back to catch-all",
			article:  Article{},
			expected: []string{"products"},
		},
		{
			name:     "no keyword match falls back to catch-all",
			article:  Article{Title: "Quantum entanglement explained"},
			expected: []string{"products"},
		},
		{
			name:     "single category",
			article:  Article{Title: "Startup raises seed money"},
			expected: []string{"business"},
		},
		{
			name:     "keyword in summary counts too",
			article:  Article{Title: "Weekly recap", Summary: "a new SDK dropped"},
			expected: []string{"developer_tools"},
		},
		{
			name:     "multiple categories in registry order",
			article:  Article{Title: "Company raises $10M and launches public API"},
			expected: []string{"business", "developer_tools", "products"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.article)
			assert.NotEmpty(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassifyWholeWordCaseInsensitive(t *testing.T) {
	c := NewClassifier(testRegistry(t))

	// "api" must match as a whole word only, in any casing.
	assert.Equal(t, []string{"developer_tools"},
		c.Classify(Article{Title: "New public API announced"}))
	assert.Equal(t, []string{"developer_tools"},
		c.Classify(Article{Title: "new public api announced"}))

	// "rapid" contains "api" but is a single larger token.
	assert.Equal(t, []string{"products"},
		c.Classify(Article{Title: "Rapid progress expected"}))

	// Multi-word phrases match as phrases.
	assert.Equal(t, []string{"business"},
		c.Classify(Article{Title: "Venture Capital eyes robotics"}))
}

func TestClassifyAll(t *testing.T) {
	c := NewClassifier(testRegistry(t))

	articles := []Article{
		{Title: "Startup raises a big round", URL: "https://a/1"},
		{Title: "Open source SDK with fresh funding", URL: "https://a/2"},
		{Title: "Nothing relevant here", URL: "https://a/3"},
	}

	buckets := c.ClassifyAll(articles)

	// Every known key has a bucket, even when empty.
	assert.Len(t, buckets, 3)
	for _, key := range []string{"business", "developer_tools", "products"} {
		_, ok := buckets[key]
		assert.True(t, ok, "missing bucket %q", key)
	}

	// Article 2 matches two categories and appears in both buckets.
	assert.Len(t, buckets["business"], 2)
	assert.Len(t, buckets["developer_tools"], 1)
	assert.Equal(t, "https://a/2", buckets["developer_tools"][0].URL)

	// The unmatched article lands in the catch-all.
	assert.Len(t, buckets["products"], 1)
	assert.Equal(t, "https://a/3", buckets["products"][0].URL)
}
