package news

import (
	"novapulse/internal/category"
)

// Classifier assigns articles to categories using the registry's precompiled
// keyword matchers.
type Classifier struct {
	reg *category.Registry
}

func NewClassifier(reg *category.Registry) *Classifier {
	return &Classifier{reg: reg}
}

// Classify returns every category key whose keywords match the article's
// title + summary text, in registry order. When nothing matches the article
// goes to the catch-all bucket, so the result is never empty.
func (c *Classifier) Classify(a Article) []string {
	text := a.Title + " " + a.Summary

	var matched []string
	for _, key := range c.reg.Order() {
		if c.reg.Get(key).Matches(text) {
			matched = append(matched, key)
		}
	}
	if len(matched) == 0 {
		return []string{category.FallbackKey}
	}
	return matched
}

// ClassifyAll groups articles by category. An article can legitimately appear
// in several buckets. Every known category key gets a bucket, empty ones
// included, so consumers never need to check for key presence.
func (c *Classifier) ClassifyAll(articles []Article) map[string][]Article {
	buckets := make(map[string][]Article, len(c.reg.Order()))
	for _, key := range c.reg.Order() {
		buckets[key] = []Article{}
	}
	for _, a := range articles {
		for _, key := range c.Classify(a) {
			buckets[key] = append(buckets[key], a)
		}
	}
	return buckets
}
