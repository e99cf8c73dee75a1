// Package summarize attaches short Gemini-written summaries to the articles
// of each category. Every failure mode degrades to "no summary attached"; the
// digest still goes out with plain titles.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"novapulse/internal/category"
	"novapulse/internal/logger"
	"novapulse/internal/metrics"
	"novapulse/internal/news"
	"novapulse/internal/ratelimit"
	"novapulse/internal/retry"
)

const (
	modelName = "gemini-2.0-flash"

	rateLimitAttempts = 3
	rateLimitDelay    = 10 * time.Second

	requestTimeout = 30 * time.Second
)

type Client struct {
	client         *genai.Client
	budget         *ratelimit.Budget
	maxPerCategory int
}

// NewClient builds a Gemini-backed summarizer. Callers must Close it.
func NewClient(ctx context.Context, apiKey string, maxPerCategory int, budget *ratelimit.Budget) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &Client{
		client:         client,
		budget:         budget,
		maxPerCategory: maxPerCategory,
	}, nil
}

func (c *Client) Close() {
	if c != nil && c.client != nil {
		c.client.Close()
	}
}

// SummarizeAll runs SummarizeCategory over every non-empty bucket. A nil
// client (no API key configured) leaves all buckets untouched.
func (c *Client) SummarizeAll(ctx context.Context, reg *category.Registry, buckets map[string][]news.Article) map[string][]news.Article {
	if c == nil {
		logger.Info("GEMINI_API_KEY not set, skipping AI summaries")
		return buckets
	}

	result := make(map[string][]news.Article, len(buckets))
	for key, articles := range buckets {
		if len(articles) == 0 {
			result[key] = articles
			continue
		}
		result[key] = c.SummarizeCategory(ctx, reg.Get(key), articles)
	}
	return result
}

// SummarizeCategory caps the bucket and asks Gemini for one short summary per
// article, attached by index. On any terminal failure the capped articles come
// back without summaries.
func (c *Client) SummarizeCategory(ctx context.Context, cat *category.Category, articles []news.Article) []news.Article {
	capped := articles
	if len(capped) > c.maxPerCategory {
		capped = capped[:c.maxPerCategory]
	}
	if len(capped) == 0 {
		return articles
	}

	if c.budget != nil && !c.budget.Allow() {
		return capped
	}

	label := cat.Key
	if cat.Title != "" {
		label = cat.Title
	}
	prompt := buildPrompt(label, capped)

	var summaries map[int]string
	err := retry.WithRetry(ctx, retry.Config{
		MaxAttempts: rateLimitAttempts,
		Delay:       rateLimitDelay,
		Backoff:     true,
		RetryIf:     isRateLimited,
	}, func() error {
		raw, err := c.generate(ctx, prompt)
		if err != nil {
			return err
		}
		summaries, err = parseSummaries(raw)
		return err
	})
	if err != nil {
		logger.Warn("Gemini summarization failed", "category", cat.Key, "error", err)
		return capped
	}

	out := make([]news.Article, len(capped))
	copy(out, capped)
	for i := range out {
		out[i].AISummary = summaries[i]
	}
	metrics.Global.AddArticlesSummarized(len(summaries))
	logger.Info("Gemini summaries attached", "category", cat.Key, "count", len(summaries))
	return out
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(1024)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type %T", resp.Candidates[0].Content.Parts[0])
	}
	return string(text), nil
}

func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 429
}
