// Package ratelimit caps how many AI requests a single run may issue.
package ratelimit

import (
	"sync"

	"novapulse/internal/logger"
)

// Budget is a simple per-run request counter. A max of 0 means unlimited.
type Budget struct {
	mu    sync.Mutex
	count int
	max   int
}

func NewBudget(max int) *Budget {
	return &Budget{max: max}
}

// Allow consumes one request from the budget and reports whether the call may
// proceed.
func (b *Budget) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.max > 0 && b.count >= b.max {
		logger.Warn("AI request budget exhausted", "used", b.count, "max", b.max)
		return false
	}
	b.count++
	return true
}

// Used returns how many requests have been consumed.
func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}
