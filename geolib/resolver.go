package geolib

import (
	"context"
	"time"
)

const DefaultLookupTimeout = 5 * time.Second

// Resolver turns a network address into a Location by walking an ordered
// provider chain. The cache is checked first; otherwise providers are
// tried in priority order, each call bounded by its own timeout. Any
// provider error or empty response is a soft failure that advances the
// chain, never an error for the caller. The first usable result is
// cached and returned. When the whole chain is exhausted the key is
// echoed back inside a Succeeded=false record.
//
// A provider that fails is not retried within a single Resolve call; the
// chain itself is the retry policy.
type Resolver struct {
	providers []IPProvider
	cache     *Cache[Location]
	timeout   time.Duration
	logger    Logger
	stats     map[string]*UsageStats
}

func (r *Resolver) Resolve(ctx context.Context, addr string) Location {
	if addr != "" {
		if cached, ok := r.cache.Get(addr); ok {
			return cached
		}
	}

	for _, provider := range r.providers {
		providerCtx, cancel := context.WithTimeout(ctx, r.timeout)
		location, err := provider.Lookup(providerCtx, addr)

		cancel()
		r.stats[provider.Name()].Used(err)

		if err != nil {
			r.logger.LookupError(provider.Name(), addr, err)

			continue
		}

		if !location.OK() {
			r.logger.Skip("empty_lookup_result", provider.Name())

			continue
		}

		if addr != "" {
			r.cache.Put(addr, location)
		}

		return location
	}

	return Location{SourceAddr: addr}
}

// Stats returns live usage counters, one per provider in the chain.
func (r *Resolver) Stats() []*UsageStats {
	rv := make([]*UsageStats, 0, len(r.providers))

	for _, provider := range r.providers {
		rv = append(rv, r.stats[provider.Name()])
	}

	return rv
}

func NewResolver(providers []IPProvider,
	cache *Cache[Location],
	timeout time.Duration,
	logger Logger) (*Resolver, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}

	stats := make(map[string]*UsageStats, len(providers))

	for _, provider := range providers {
		stats[provider.Name()] = &UsageStats{Name: provider.Name()}
	}

	return &Resolver{
		providers: providers,
		cache:     cache,
		timeout:   timeout,
		logger:    logger,
		stats:     stats,
	}, nil
}
