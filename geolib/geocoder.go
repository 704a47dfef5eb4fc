package geolib

import (
	"context"
	"time"
)

const DefaultGeocodeTimeout = 5 * time.Second

// Geocoder resolves a venue's free-text identity to a location through a
// single keyed forward-geocoding provider. The provider may be nil when
// no API key is configured: in that case every call short-circuits to a
// failed result without touching the network, and the matching layer
// falls back to text hints.
//
// The query sent upstream is the venue keyword prefixed with the city
// hint, which disambiguates common venue names shared across cities.
type Geocoder struct {
	provider GeocodeProvider
	cache    *Cache[GeocodeResult]
	timeout  time.Duration
	logger   Logger
}

// Enabled reports whether a geocoding provider is configured at all.
func (g *Geocoder) Enabled() bool {
	return g.provider != nil
}

func (g *Geocoder) Geocode(ctx context.Context, query VenueQuery) GeocodeResult {
	keyword := query.Keyword()
	if keyword == "" {
		return GeocodeResult{}
	}

	if g.provider == nil {
		g.logger.Skip("geocode_key_missing", keyword)

		return GeocodeResult{}
	}

	cacheKey := keyword + "_" + query.CityHint
	if cached, ok := g.cache.Get(cacheKey); ok {
		return cached
	}

	address := query.CityHint + keyword

	providerCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.provider.Geocode(providerCtx, address)
	if err != nil {
		g.logger.GeocodeError(g.provider.Name(), address, err)

		return GeocodeResult{}
	}

	if !result.OK() {
		g.logger.Skip("empty_geocode_result", address)

		return GeocodeResult{}
	}

	g.cache.Put(cacheKey, result)

	return result
}

func NewGeocoder(provider GeocodeProvider,
	cache *Cache[GeocodeResult],
	timeout time.Duration,
	logger Logger) *Geocoder {
	if timeout <= 0 {
		timeout = DefaultGeocodeTimeout
	}

	return &Geocoder{
		provider: provider,
		cache:    cache,
		timeout:  timeout,
		logger:   logger,
	}
}
