// Package headlines implements the fetch-and-cache pipeline between the
// NewsData.io client and the presentation layers.
package headlines

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/Andrew77447/newsapp/internal/cache"
	"github.com/Andrew77447/newsapp/internal/newsdata"
	"github.com/Andrew77447/newsapp/internal/query"
)

// pubDateLayout is what NewsData.io puts in pubDate, interpreted as UTC.
const pubDateLayout = "2006-01-02 15:04:05"

// displayLayout is the local-time form shown to users.
const displayLayout = "02 Jan 2006, 15:04"

// Fetcher is the remote-call boundary, satisfied by *newsdata.Client.
type Fetcher interface {
	Latest(ctx context.Context, params url.Values) ([]cache.Article, error)
}

// Service resolves filter sets to article slices, serving from the cache
// when the stored set is still fresh.
type Service struct {
	client Fetcher
	store  *cache.Store
	log    *slog.Logger
}

func NewService(client Fetcher, store *cache.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: client, store: store, log: log}
}

// Fetch returns at most filters.Limit articles for the filter set. The cache
// stores the full unsliced set keyed by the non-limit fields, so a later call
// with a larger limit still hits. Truncation is always the last step.
func (s *Service) Fetch(ctx context.Context, filters query.Filters) ([]cache.Article, error) {
	return s.fetch(ctx, filters, true)
}

// FetchFresh bypasses the cache read but still stores the result.
func (s *Service) FetchFresh(ctx context.Context, filters query.Filters) ([]cache.Article, error) {
	return s.fetch(ctx, filters, false)
}

func (s *Service) fetch(ctx context.Context, filters query.Filters, useCache bool) ([]cache.Article, error) {
	params := filters.Params()
	key := params.Encode()

	if useCache {
		if articles, ok := s.store.Get(key); ok {
			cacheHits.Inc()
			s.log.Debug("cache hit", "key", key, "articles", len(articles))
			return truncate(articles, filters.Limit), nil
		}
		cacheMisses.Inc()
	}

	articles, err := s.client.Latest(ctx, params)
	if err != nil {
		fetchErrors.Inc()
		var apiErr *newsdata.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("API error: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("communication error: %w", err)
	}

	for i := range articles {
		articles[i].PubDateFormatted = s.formatPubDate(articles[i].PubDate)
	}

	s.store.Set(key, articles)
	return truncate(articles, filters.Limit), nil
}

// CacheStats exposes the store counters for health reporting.
func (s *Service) CacheStats() cache.Stats {
	return s.store.Stats()
}

// formatPubDate converts the API timestamp to local display time. A value
// that does not match the expected layout passes through unchanged; one bad
// date must never abort the batch.
func (s *Service) formatPubDate(raw string) string {
	if raw == "" {
		return raw
	}
	t, err := time.ParseInLocation(pubDateLayout, raw, time.UTC)
	if err != nil {
		s.log.Warn("unparseable pubDate, passing through", "pubDate", raw)
		return raw
	}
	return t.Local().Format(displayLayout)
}

func truncate(articles []cache.Article, limit int) []cache.Article {
	if limit > 0 && len(articles) > limit {
		return articles[:limit]
	}
	return articles
}
