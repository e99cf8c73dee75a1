// Package seen persists the bounded set of already-delivered article URLs.
// Storage format is a flat JSON array of strings, fully overwritten on save.
package seen

import (
	"encoding/json"
	"fmt"
	"os"

	"novapulse/internal/news"
)

// Set is a membership set of URLs that also remembers insertion order, so the
// save-time trim deterministically drops the oldest entries. Eviction is
// insertion-ordered, not strict LRU: re-adding a known URL does not refresh
// its position.
type Set struct {
	members map[string]struct{}
	order   []string
}

func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

func (s *Set) Add(url string) {
	if url == "" {
		return
	}
	if _, ok := s.members[url]; ok {
		return
	}
	s.members[url] = struct{}{}
	s.order = append(s.order, url)
}

func (s *Set) Contains(url string) bool {
	_, ok := s.members[url]
	return ok
}

func (s *Set) Len() int {
	return len(s.order)
}

// FilterUnseen returns the articles whose URL is not in the set, preserving
// input order.
func (s *Set) FilterUnseen(articles []news.Article) []news.Article {
	fresh := make([]news.Article, 0, len(articles))
	for _, a := range articles {
		if !s.Contains(a.URL) {
			fresh = append(fresh, a)
		}
	}
	return fresh
}

// Store reads and writes a Set at a fixed path, keeping at most max entries.
type Store struct {
	path string
	max  int
}

func NewStore(path string, max int) *Store {
	return &Store{path: path, max: max}
}

// Load reconstructs the set from disk. A missing file is the expected
// first-run state and yields an empty set, not an error.
func (st *Store) Load() (*Set, error) {
	set := NewSet()

	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, fmt.Errorf("read seen file: %w", err)
	}
	if len(data) == 0 {
		return set, nil
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil, fmt.Errorf("parse seen file: %w", err)
	}
	for _, u := range urls {
		set.Add(u)
	}
	return set, nil
}

// Save overwrites the file with at most max URLs, keeping the newest by
// insertion order so the file cannot grow forever.
func (st *Store) Save(set *Set) error {
	urls := set.order
	if st.max > 0 && len(urls) > st.max {
		urls = urls[len(urls)-st.max:]
	}

	data, err := json.Marshal(urls)
	if err != nil {
		return fmt.Errorf("marshal seen set: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0644); err != nil {
		return fmt.Errorf("write seen file: %w", err)
	}
	return nil
}
