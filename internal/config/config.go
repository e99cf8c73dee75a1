// Package config loads runtime settings from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram settings
	TelegramToken     string
	TelegramChannelID string

	// NewsAPI settings (optional; empty key disables the source)
	NewsAPIKey string

	// Gemini settings (optional; empty key disables AI summaries)
	GeminiAPIKey      string
	MaxGeminiRequests int // maximum Gemini requests per run (0 = unlimited)

	// Digest behaviour
	TargetCategory         string // "all" or a single category key
	ManualRun              bool   // on-demand run: bypass the seen-set entirely
	FreshWindow            time.Duration
	MaxArticlesPerCategory int

	// Delivery
	DryRun    bool
	SendDelay time.Duration

	// Seen-set persistence
	SeenURLsFile string
	MaxSeenURLs  int

	// Category table
	CategoriesConfigPath string

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		TargetCategory:         "all",
		FreshWindow:            12 * time.Hour,
		MaxArticlesPerCategory: 5,
		SendDelay:              2 * time.Second,
		SeenURLsFile:           "seen_urls.json",
		MaxSeenURLs:            500,
		CategoriesConfigPath:   "configs/categories.yaml",
	}

	// Load from environment
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChannelID = os.Getenv("TELEGRAM_CHANNEL_ID")
	cfg.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if cat := os.Getenv("CATEGORY"); cat != "" {
		cfg.TargetCategory = cat
	}

	// A workflow_dispatch event means someone asked for the digest right now,
	// so the run always serves fresh content.
	cfg.ManualRun = os.Getenv("EVENT_NAME") == "workflow_dispatch"

	if v := os.Getenv("FRESH_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.FreshWindow = time.Duration(val) * time.Hour
		}
	}
	if v := os.Getenv("MAX_ARTICLES_PER_CATEGORY"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxArticlesPerCategory = val
		}
	}
	if v := os.Getenv("SEND_DELAY_SECONDS"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val >= 0 {
			cfg.SendDelay = time.Duration(val * float64(time.Second))
		}
	}
	if v := os.Getenv("MAX_GEMINI_REQUESTS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxGeminiRequests = val
		}
	}
	if v := os.Getenv("MAX_SEEN_URLS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxSeenURLs = val
		}
	}

	cfg.SeenURLsFile = getEnvOrDefault("SEEN_URLS_FILE", cfg.SeenURLsFile)
	cfg.CategoriesConfigPath = getEnvOrDefault("CATEGORIES_CONFIG", cfg.CategoriesConfigPath)

	if os.Getenv("DRY_RUN") == "true" {
		cfg.DryRun = true
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) Validate() error {
	// Missing NewsAPI or Gemini keys only disable those sources. The delivery
	// channel is the one hard requirement, and dry-run needs no channel.
	if !c.DryRun {
		if c.TelegramToken == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN is required (or set DRY_RUN=true)")
		}
		if c.TelegramChannelID == "" {
			return fmt.Errorf("TELEGRAM_CHANNEL_ID is required (or set DRY_RUN=true)")
		}
	}
	if c.FreshWindow <= 0 {
		return fmt.Errorf("fresh window must be positive")
	}
	return nil
}
