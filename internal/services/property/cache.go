package property

import (
	"context"
	"strconv"
	"time"

	"saudapakka/internal/repositories/cache"
)

const listingCacheTTL = 5 * time.Minute

type listingCache struct {
	cache *cache.CacheService
}

// NewListingCache adapts the shared cache service to the listing cache.
func NewListingCache(cs *cache.CacheService) ListingCache {
	return &listingCache{cache: cs}
}

func (c *listingCache) GetListings(ctx context.Context, key string, dest *[]View) (bool, error) {
	return c.cache.Get(ctx, key, dest)
}

func (c *listingCache) SetListings(ctx context.Context, key string, views []View) error {
	return c.cache.SetWithTTL(ctx, key, views, listingCacheTTL)
}

func (c *listingCache) Invalidate(ctx context.Context) error {
	return c.cache.InvalidateListings(ctx)
}

// CacheKey derives the cache key for a public listing query.
func (f Filter) CacheKey() string {
	params := map[string]string{}
	if f.PriceGTE != nil {
		params["price__gte"] = strconv.FormatFloat(*f.PriceGTE, 'f', 2, 64)
	}
	if f.PriceLTE != nil {
		params["price__lte"] = strconv.FormatFloat(*f.PriceLTE, 'f', 2, 64)
	}
	if f.PropertyType != "" {
		params["property_type"] = f.PropertyType
	}
	if f.ListingType != "" {
		params["listing_type"] = f.ListingType
	}
	if f.Search != "" {
		params["search"] = f.Search
	}
	if f.Ordering != "" {
		params["ordering"] = f.Ordering
	}
	return cache.ListingKey(params)
}

// NoopListingCache disables caching; used in tests and as a fallback
// when redis is unavailable.
type NoopListingCache struct{}

func (NoopListingCache) GetListings(context.Context, string, *[]View) (bool, error) {
	return false, nil
}
func (NoopListingCache) SetListings(context.Context, string, []View) error { return nil }
func (NoopListingCache) Invalidate(context.Context) error                  { return nil }
