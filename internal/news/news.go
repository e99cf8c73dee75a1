// Package news defines the normalized article record and the pure data-flow
// steps of the pipeline: merging, deduplication, ordering and classification.
package news

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

// Article is a single normalized news item. Two articles are the same article
// iff their URLs are byte-identical; trailing slashes, tracking parameters and
// scheme variants are deliberately not normalized away.
type Article struct {
	Title     string
	URL       string
	Summary   string
	Published time.Time
	Source    string

	// AISummary is attached by the summarizer after classification.
	// Absent is a valid, expected state.
	AISummary string
}

// DedupeByURL removes duplicate articles by exact URL, keeping the first
// occurrence and preserving input order.
func DedupeByURL(articles []Article) []Article {
	return lo.UniqBy(articles, func(a Article) string {
		return a.URL
	})
}

// Aggregate merges the RSS-derived and search-API-derived article lists,
// dedupes by URL (the two sources may overlap) and sorts by publish time,
// most recent first. Downstream per-category capping relies on this ordering
// being established exactly once, here.
func Aggregate(rss, api []Article) []Article {
	merged := make([]Article, 0, len(rss)+len(api))
	merged = append(merged, rss...)
	merged = append(merged, api...)
	merged = DedupeByURL(merged)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Published.After(merged[j].Published)
	})
	return merged
}
