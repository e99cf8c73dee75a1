// Package format renders the classified digest into Telegram HTML blocks.
// Each category becomes its own message so no block fights the 4096-char
// message limit.
package format

import (
	"fmt"
	"strings"
	"time"

	"novapulse/internal/category"
	"novapulse/internal/news"
)

const (
	// blockMaxRunes keeps a safety margin under Telegram's 4096 limit.
	blockMaxRunes = 4000

	footer = "━━━━━━━━━━━━━━━━━━━━━━\n💡 <i>Curated by AI, powered by</i> <b>BuzzWordAI</b>\n📢 Share with your tech crew! ⚡"
)

// Digest builds the ordered message list: header, one block per non-empty
// category in registry order, footer.
func Digest(reg *category.Registry, buckets map[string][]news.Article, maxPerCategory int) []string {
	messages := []string{Header(time.Now())}

	for _, key := range reg.Order() {
		articles := buckets[key]
		if len(articles) == 0 {
			continue
		}
		block := CategoryBlock(reg.Get(key), articles, maxPerCategory)
		if runes := []rune(block); len(runes) > blockMaxRunes {
			block = string(runes[:blockMaxRunes-3]) + "…"
		}
		messages = append(messages, block)
	}

	messages = append(messages, footer)
	return messages
}

// Header renders the digest banner with the current date and time in IST.
func Header(now time.Time) string {
	ist := now.UTC().Add(5*time.Hour + 30*time.Minute)

	var b strings.Builder
	b.WriteString("🧠 <b>BuzzWordAI</b> — Your Daily AI Pulse\n")
	b.WriteString(fmt.Sprintf("📅 <i>%s • %s IST</i>\n", ist.Format("02 Jan 2006"), ist.Format("03:04 PM")))
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━━\n\n")
	b.WriteString("Here's what's happening in the world of AI 👇")
	return b.String()
}

// CategoryBlock formats one category's articles. Articles with an AI summary
// show the summary; the rest fall back to the plain title. Both styles carry a
// separate "Read more" link.
func CategoryBlock(cat *category.Category, articles []news.Article, max int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s</b>\n\n", cat.Emoji, cat.Title))

	if len(articles) > max {
		articles = articles[:max]
	}
	for _, a := range articles {
		line := a.AISummary
		if line == "" {
			line = a.Title
		}
		b.WriteString("▸ " + escapeHTML(line) + "\n")
		b.WriteString(fmt.Sprintf("   🔗 <a href=\"%s\">Read more</a>\n\n", a.URL))
	}

	return strings.TrimRight(b.String(), "\n")
}

// SummaryLine is a one-line per-category article count for logs.
func SummaryLine(reg *category.Registry, buckets map[string][]news.Article) string {
	var parts []string
	for _, key := range reg.Order() {
		if n := len(buckets[key]); n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", reg.Get(key).Emoji, n))
		}
	}
	if len(parts) == 0 {
		return "No articles found"
	}
	return strings.Join(parts, "  ")
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}
