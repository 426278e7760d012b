package types

import "time"

// CacheKey identifies a cached series. Keys are exactly (asset, timeframe).
type CacheKey struct {
	Asset     string
	Timeframe Timeframe
}

// CacheEntry is a cached series and the time it was fetched.
type CacheEntry struct {
	Series    Series
	FetchedAt time.Time
}

// ProviderState is a point-in-time snapshot of a provider's limiter and cache.
type ProviderState struct {
	Name               string
	MinRequestInterval time.Duration
	LastRequestTime    time.Time
	RateLimited        bool
	Cache              map[CacheKey]CacheEntry
}
