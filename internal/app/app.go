// Package app sequences one digest run: load seen state, fetch, aggregate,
// classify, summarize, send, persist.
package app

import (
	"context"
	"time"

	"novapulse/internal/category"
	"novapulse/internal/config"
	"novapulse/internal/feed"
	"novapulse/internal/format"
	"novapulse/internal/logger"
	"novapulse/internal/metrics"
	"novapulse/internal/news"
	"novapulse/internal/newsapi"
	"novapulse/internal/ratelimit"
	"novapulse/internal/seen"
	"novapulse/internal/summarize"
	"novapulse/internal/telegram"
)

// Run executes a single batch run. "Nothing fetched", "nothing new" and
// "nothing classified for the requested scope" are clean early exits, not
// errors; the job often has nothing to report.
func Run(cfg *config.Config) error {
	start := time.Now()
	ctx := context.Background()

	logger.Info("NovaPulse starting", "manual", cfg.ManualRun, "category", cfg.TargetCategory)

	reg, err := category.Load(cfg.CategoriesConfigPath)
	if err != nil {
		return err
	}

	// 1. Load dedup state. A corrupt file is downgraded to an empty set so a
	// bad write can never permanently wedge the job.
	store := seen.NewStore(cfg.SeenURLsFile, cfg.MaxSeenURLs)
	seenSet, err := store.Load()
	if err != nil {
		logger.Warn("seen-set load failed, starting empty", "error", err)
		seenSet = seen.NewSet()
	}
	logger.Info("Seen URLs loaded", "count", seenSet.Len())

	// 2. Fetch from all sources and aggregate.
	fetcher := feed.NewFetcher()
	rssArticles := fetcher.FetchAll(ctx, reg, cfg.FreshWindow)
	apiArticles := newsapi.NewClient(cfg.NewsAPIKey).Fetch(ctx, cfg.FreshWindow)

	all := news.Aggregate(rssArticles, apiArticles)
	metrics.Global.AddArticlesFetched(len(all))
	logger.Info("Total fetched", "articles", len(all))
	if len(all) == 0 {
		logger.Info("Nothing fetched. Exiting.")
		return nil
	}

	// 3. Drop already-seen articles, unless someone asked for the digest
	// right now — manual runs always serve current content.
	var fresh []news.Article
	if cfg.ManualRun {
		fresh = all
		logger.Info("Manual trigger, bypassing deduplication", "articles", len(fresh))
	} else {
		fresh = seenSet.FilterUnseen(all)
		metrics.Global.AddSeenFiltered(len(all) - len(fresh))
		logger.Info("Fresh articles (not seen before)", "articles", len(fresh))
	}
	if len(fresh) == 0 {
		logger.Info("Nothing new to post. Exiting.")
		return nil
	}

	// 4. Classify, optionally narrowing to one requested category.
	buckets := news.NewClassifier(reg).ClassifyAll(fresh)
	buckets = narrowToCategory(reg, buckets, cfg.TargetCategory)
	logger.Info("Digest", "summary", format.SummaryLine(reg, buckets))
	if !hasArticles(buckets) {
		logger.Info("No matching articles for the given criteria. Exiting.")
		return nil
	}

	// 5. AI summaries (degrades to plain titles on any failure).
	buckets = summarizeBuckets(ctx, cfg, reg, buckets)

	// 6. Format and send.
	messages := format.Digest(reg, buckets, cfg.MaxArticlesPerCategory)
	sender := telegram.NewSender(cfg.TelegramToken, cfg.TelegramChannelID, cfg.SendDelay, cfg.DryRun)
	sent := sender.SendMessages(messages)
	logger.Info("Messages sent", "sent", sent, "total", len(messages))

	// 7. Persist seen URLs on automated runs only.
	if cfg.ManualRun {
		logger.Info("Bypassed saving seen URLs for manual request")
	} else {
		for _, a := range fresh {
			seenSet.Add(a.URL)
		}
		if err := store.Save(seenSet); err != nil {
			return err
		}
		logger.Info("Saved new URLs to seen list", "added", len(fresh))
	}

	metrics.Global.SetLastRun(time.Since(start))
	logger.Info("NovaPulse run complete", "duration", time.Since(start))
	return nil
}

// narrowToCategory keeps only the requested bucket. "all" keeps everything;
// an unknown key yields empty buckets rather than an error.
func narrowToCategory(reg *category.Registry, buckets map[string][]news.Article, target string) map[string][]news.Article {
	if target == "" || target == "all" {
		return buckets
	}
	if !reg.Has(target) {
		logger.Warn("Requested category not found", "category", target)
		return map[string][]news.Article{}
	}
	logger.Info("Filtering digest for category", "category", target)
	return map[string][]news.Article{target: buckets[target]}
}

func hasArticles(buckets map[string][]news.Article) bool {
	for _, articles := range buckets {
		if len(articles) > 0 {
			return true
		}
	}
	return false
}

func summarizeBuckets(ctx context.Context, cfg *config.Config, reg *category.Registry, buckets map[string][]news.Article) map[string][]news.Article {
	var client *summarize.Client
	if cfg.GeminiAPIKey != "" {
		var err error
		client, err = summarize.NewClient(ctx, cfg.GeminiAPIKey, cfg.MaxArticlesPerCategory,
			ratelimit.NewBudget(cfg.MaxGeminiRequests))
		if err != nil {
			logger.Warn("Gemini client init failed, sending without summaries", "error", err)
			client = nil
		}
		defer client.Close()
	}
	return client.SummarizeAll(ctx, reg, buckets)
}
