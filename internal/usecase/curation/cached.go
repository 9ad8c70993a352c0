package curation

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/crimedex/crimedex/internal/cache"
)

const cacheKeyPrefix = "crimedex:leaderboard:"

// cached wraps a leaderboard fetch with the optional result cache. Cache
// failures degrade to the underlying query with a warn log; they never fail
// the request.
func cached[T any](ctx context.Context, s *Service, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache == nil {
		return fetch(ctx)
	}

	fullKey := cacheKeyPrefix + key
	if data, err := s.cache.Get(ctx, fullKey); err == nil {
		var out []T
		if jerr := json.Unmarshal(data, &out); jerr == nil {
			s.incCache("hit")
			return out, nil
		}
		s.logger.Warn("Failed to decode cached leaderboard", zap.String("key", fullKey))
	} else if !errors.Is(err, cache.ErrKeyNotFound) {
		s.logger.Warn("Failed to read leaderboard cache", zap.String("key", fullKey), zap.Error(err))
	}
	s.incCache("miss")

	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if data, jerr := json.Marshal(out); jerr == nil {
		if cerr := s.cache.SetWithTTL(ctx, fullKey, data, s.cacheTTL); cerr != nil {
			s.logger.Warn("Failed to cache leaderboard", zap.String("key", fullKey), zap.Error(cerr))
		}
	}
	return out, nil
}

func (s *Service) incCache(result string) {
	if s.cacheTotal != nil {
		s.cacheTotal.WithLabelValues(result).Inc()
	}
}
