// Package category holds the static classification table: category keys,
// display metadata, keyword lists and their associated RSS feeds. Keyword
// matchers are compiled once when the registry is built and reused for the
// lifetime of the process.
package category

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FallbackKey is the catch-all bucket for articles matching no keywords.
const FallbackKey = "products"

// Category is one entry of the classification table.
type Category struct {
	Key      string   `yaml:"-"`
	Emoji    string   `yaml:"emoji"`
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Keywords []string `yaml:"keywords"`
	RSSFeeds []string `yaml:"rss_feeds"`

	matcher *regexp.Regexp
}

// Matches reports whether any of the category's keyword phrases occurs in
// text as a whole word, case-insensitively.
func (c *Category) Matches(text string) bool {
	if c.matcher == nil {
		return false
	}
	return c.matcher.MatchString(text)
}

// Registry is the immutable category table plus the global feed list.
type Registry struct {
	categories  map[string]*Category
	order       []string
	globalFeeds []string
}

type tableFile struct {
	Categories  map[string]*Category `yaml:"categories"`
	Order       []string             `yaml:"order"`
	GlobalFeeds []string             `yaml:"global_feeds"`
}

// Load reads the category table from a YAML file and compiles all matchers.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category table: %w", err)
	}

	var tf tableFile
	if err := yaml.Unmarshal(raw, &tf); err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}
	return New(tf.Categories, tf.Order, tf.GlobalFeeds)
}

// New builds a registry from already-parsed table data.
func New(categories map[string]*Category, order []string, globalFeeds []string) (*Registry, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("category table is empty")
	}
	if _, ok := categories[FallbackKey]; !ok {
		return nil, fmt.Errorf("category table has no %q catch-all", FallbackKey)
	}

	// Fall back to map iteration only if the table carries no explicit order.
	if len(order) == 0 {
		for key := range categories {
			order = append(order, key)
		}
	}
	for _, key := range order {
		if _, ok := categories[key]; !ok {
			return nil, fmt.Errorf("order references unknown category %q", key)
		}
	}

	for key, cat := range categories {
		cat.Key = key
		m, err := compileMatcher(cat.Keywords)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", key, err)
		}
		cat.matcher = m
	}

	return &Registry{
		categories:  categories,
		order:       order,
		globalFeeds: globalFeeds,
	}, nil
}

// compileMatcher joins escaped keyword phrases into a single case-insensitive
// word-boundary alternation, compiled once per category.
func compileMatcher(keywords []string) (*regexp.Regexp, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	escaped := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		escaped = append(escaped, regexp.QuoteMeta(kw))
	}
	if len(escaped) == 0 {
		return nil, nil
	}
	return regexp.Compile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
}

// Get returns the category for key, or nil if unknown.
func (r *Registry) Get(key string) *Category {
	return r.categories[key]
}

// Has reports whether key is a known category.
func (r *Registry) Has(key string) bool {
	_, ok := r.categories[key]
	return ok
}

// Order returns category keys in digest display order.
func (r *Registry) Order() []string {
	return r.order
}

// AllFeeds unions the global feed list with every category's feeds,
// deduplicating the addresses so no feed is fetched twice.
func (r *Registry) AllFeeds() []string {
	seen := make(map[string]struct{})
	var feeds []string
	add := func(url string) {
		if url == "" {
			return
		}
		if _, dup := seen[url]; dup {
			return
		}
		seen[url] = struct{}{}
		feeds = append(feeds, url)
	}

	for _, url := range r.globalFeeds {
		add(url)
	}
	for _, key := range r.order {
		for _, url := range r.categories[key].RSSFeeds {
			add(url)
		}
	}
	return feeds
}
