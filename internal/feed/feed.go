// Package feed ingests RSS/Atom sources and turns their entries into
// normalized articles within the recency window.
package feed

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"novapulse/internal/category"
	"novapulse/internal/logger"
	"novapulse/internal/metrics"
	"novapulse/internal/news"
)

const (
	// summaryMaxRunes bounds the normalized description length.
	summaryMaxRunes = 300

	fetchTimeout = 15 * time.Second

	placeholderTitle = "No title"
)

// Fetcher downloads and parses syndication feeds.
type Fetcher struct {
	parser *gofeed.Parser
}

func NewFetcher() *Fetcher {
	p := gofeed.NewParser()
	p.Client = &http.Client{Timeout: fetchTimeout}
	return &Fetcher{parser: p}
}

// Fetch pulls one feed and returns its recent articles. A feed that fails to
// fetch or parse yields zero articles, never an error: one bad source must not
// block the rest of the run.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, window time.Duration) []news.Article {
	parsed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		logger.Warn("RSS fetch failed", "feed", feedURL, "error", err)
		return nil
	}

	now := time.Now()
	var articles []news.Article
	for _, entry := range parsed.Items {
		a := normalize(entry, feedURL, now)
		if a.URL == "" {
			continue
		}
		if !isRecent(a.Published, now, window) {
			continue
		}
		articles = append(articles, a)
	}
	return articles
}

// FetchAll fetches the registry's union of global and per-category feeds
// (addresses already deduplicated) and dedupes the collected articles by URL.
func (f *Fetcher) FetchAll(ctx context.Context, reg *category.Registry, window time.Duration) []news.Article {
	feeds := reg.AllFeeds()

	var articles []news.Article
	for _, feedURL := range feeds {
		fetched := f.Fetch(ctx, feedURL, window)
		logger.Debug("RSS feed fetched", "feed", feedURL, "articles", len(fetched))
		articles = append(articles, fetched...)
	}

	unique := news.DedupeByURL(articles)
	metrics.Global.AddDuplicatesFiltered(len(articles) - len(unique))
	logger.Info("RSS fetch complete",
		"feeds", len(feeds), "articles", len(articles), "unique", len(unique))
	return unique
}

// normalize converts a feed entry into the standard article shape. The publish
// time falls back published → updated → now, so every article always carries
// some timestamp.
func normalize(entry *gofeed.Item, sourceURL string, now time.Time) news.Article {
	title := strings.TrimSpace(entry.Title)
	if title == "" {
		title = placeholderTitle
	}

	return news.Article{
		Title:     title,
		URL:       entry.Link,
		Summary:   truncateRunes(stripHTML(entry.Description), summaryMaxRunes),
		Published: resolvePublished(entry, now),
		Source:    sourceURL,
	}
}

func resolvePublished(entry *gofeed.Item, now time.Time) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	return now
}

// isRecent keeps articles published within the window; the cutoff boundary
// itself is inclusive.
func isRecent(published, now time.Time, window time.Duration) bool {
	cutoff := now.Add(-window)
	return !published.Before(cutoff)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		s = string(runes[:max])
	}
	return strings.TrimSpace(s)
}
