package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesFetched      int64
	DuplicatesFiltered   int64
	SeenFiltered         int64
	ArticlesSummarized   int64
	TelegramMessagesSent int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddArticlesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) AddSeenFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SeenFiltered += int64(n)
}

func (m *Metrics) AddArticlesSummarized(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesSummarized += int64(n)
}

func (m *Metrics) AddMessagesSent(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TelegramMessagesSent += int64(n)
}

func (m *Metrics) SetLastRun(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.LastRunDuration = d
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_fetched":       m.ArticlesFetched,
		"duplicates_filtered":    m.DuplicatesFiltered,
		"seen_filtered":          m.SeenFiltered,
		"articles_summarized":    m.ArticlesSummarized,
		"telegram_messages_sent": m.TelegramMessagesSent,
		"last_run_duration_ms":   m.LastRunDuration.Milliseconds(),
		"last_run_time":          m.LastRunTime.Format(time.RFC3339),
		"last_error_time":        m.LastErrorTime.Format(time.RFC3339),
		"last_error":             m.LastError,
		"is_healthy":             m.IsHealthy,
	}
}
