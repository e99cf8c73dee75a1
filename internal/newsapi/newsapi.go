// Package newsapi queries the NewsAPI "everything" endpoint for AI coverage.
// The source is optional: without an API key the client returns nothing.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"novapulse/internal/logger"
	"novapulse/internal/news"
)

const (
	defaultBaseURL = "https://newsapi.org"

	searchQuery = "artificial intelligence OR AI OR machine learning OR LLM OR generative AI"
)

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type response struct {
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Fetch returns recent AI articles from NewsAPI. A missing key, a failed
// request or a malformed payload all degrade to an empty result.
func (c *Client) Fetch(ctx context.Context, window time.Duration) []news.Article {
	if c.apiKey == "" {
		logger.Info("NewsAPI key not set, skipping NewsAPI fetch")
		return nil
	}

	from := time.Now().UTC().Add(-window).Format("2006-01-02T15:04:05Z")
	params := url.Values{
		"q":        {searchQuery},
		"language": {"en"},
		"sortBy":   {"publishedAt"},
		"from":     {from},
		"pageSize": {"100"},
		"apiKey":   {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v2/everything?"+params.Encode(), nil)
	if err != nil {
		logger.Warn("NewsAPI request build failed", "error", err)
		return nil
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Warn("NewsAPI fetch failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("NewsAPI fetch failed", "error", fmt.Sprintf("status %d", resp.StatusCode))
		return nil
	}

	var data response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		logger.Warn("NewsAPI response decode failed", "error", err)
		return nil
	}

	var articles []news.Article
	for _, item := range data.Articles {
		if item.URL == "" || item.Title == "" {
			continue
		}
		published, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			published = time.Now()
		}
		source := item.Source.Name
		if source == "" {
			source = "NewsAPI"
		}
		summary := []rune(strings.TrimSpace(item.Description))
		if len(summary) > 300 {
			summary = summary[:300]
		}
		articles = append(articles, news.Article{
			Title:     strings.TrimSpace(item.Title),
			URL:       item.URL,
			Summary:   strings.TrimSpace(string(summary)),
			Published: published,
			Source:    source,
		})
	}

	logger.Info("NewsAPI fetch complete", "articles", len(articles))
	return articles
}
