package revenue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKey    = "revenue:summary"
	cacheTTL    = 10 * time.Minute
	monthsShown = 12
)

// Service serves the revenue summary from cache, falling back to the
// aggregation query. The cron warmup task keeps the cache fresh.
type Service struct {
	repo   Repository
	redis  *redis.Client
	logger *slog.Logger
}

// NewService wires the revenue service. redis may be nil; lookups then go
// straight to the repository.
func NewService(repo Repository, client *redis.Client, logger *slog.Logger) *Service {
	return &Service{repo: repo, redis: client, logger: logger}
}

// GetSummary returns the cached summary, computing it on a miss.
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	if s.redis != nil {
		raw, err := s.redis.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var summary Summary
			if err := json.Unmarshal(raw, &summary); err == nil {
				return &summary, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("revenue cache read failed", "error", err)
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the summary and overwrites the cache. Called on cache
// misses and by the warmup cron.
func (s *Service) Refresh(ctx context.Context) (*Summary, error) {
	items, err := s.repo.MonthlySummary(ctx, monthsShown)
	if err != nil {
		return nil, err
	}
	summary := &Summary{Items: items, GeneratedAt: time.Now()}

	if s.redis != nil {
		raw, err := json.Marshal(summary)
		if err == nil {
			if err := s.redis.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
				s.logger.Warn("revenue cache write failed", "error", err)
			}
		}
	}
	return summary, nil
}
