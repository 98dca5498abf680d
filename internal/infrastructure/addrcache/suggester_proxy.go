// Package addrcache caches address suggestions so repeated profile lookups
// do not hit the external suggestion API.
package addrcache

import (
	"context"
	"time"

	"gitlab.com/forgefit/gymcore/internal/core/service"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/cache"
	"gitlab.com/forgefit/gymcore/internal/infrastructure/metrics"
)

// SuggesterProxy decorates an AddressSuggester with a TTL cache.
type SuggesterProxy struct {
	suggester service.AddressSuggester
	cache     cache.Cache
	ttl       time.Duration
}

func NewSuggesterProxy(suggester service.AddressSuggester, cache cache.Cache, ttl time.Duration) *SuggesterProxy {
	return &SuggesterProxy{
		suggester: suggester,
		cache:     cache,
		ttl:       ttl,
	}
}

// Suggest serves from cache when possible. Errors are never cached.
func (p *SuggesterProxy) Suggest(ctx context.Context, query string) ([]*service.Address, error) {
	cacheKey := "suggest:" + query

	start := time.Now()
	cached, found := p.cache.Get(cacheKey)
	metrics.ObserveCacheRequest("AddressSuggest", found, time.Since(start))

	if found {
		return cached.([]*service.Address), nil
	}

	data, err := p.suggester.Suggest(ctx, query)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	p.cache.Set(cacheKey, data, p.ttl)
	metrics.ObserveCacheRequest("AddressSuggest_Set", true, time.Since(start))

	return data, nil
}
