package providers

import (
	"context"
	"strings"
	"time"

	"github.com/i474232898/historical-temps/internal/history"
	"github.com/patrickmn/go-cache"
)

// CachingResolver remembers successful lookups for the life of the process,
// so reloading a dataset for the same postal code skips the geocoder.
// Failures are not cached.
type CachingResolver struct {
	next  history.Resolver
	cache *cache.Cache
}

func NewCachingResolver(next history.Resolver, ttl time.Duration) *CachingResolver {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &CachingResolver{
		next:  next,
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *CachingResolver) Resolve(ctx context.Context, postalCode string) (history.Location, error) {
	key := strings.TrimSpace(postalCode)
	if cached, found := c.cache.Get(key); found {
		return cached.(history.Location), nil
	}

	loc, err := c.next.Resolve(ctx, postalCode)
	if err != nil {
		return history.Location{}, err
	}
	c.cache.Set(key, loc, cache.DefaultExpiration)
	return loc, nil
}
