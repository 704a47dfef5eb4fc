package geolib

import "context"

// Engine wires the whole matching pipeline together: resolve the client
// location (discovering the public address first when none is given),
// geocode every candidate venue concurrently, score, threshold and rank.
//
// Provider flakiness never surfaces as an error. The only empty-handed
// outcome is an empty result list, returned when the client's own
// location cannot be resolved at all.
type Engine struct {
	public   *PublicAddressResolver
	resolver *Resolver
	batch    *BatchGeocoder
	logger   Logger
}

// Match ranks the candidate venues by how well their resolved locations
// agree with the client's. addr may be empty: the engine then discovers
// the caller's public address itself, and falls through to the
// self-lookup provider when even that fails.
func (e *Engine) Match(ctx context.Context, addr string, venues []VenueQuery) []MatchResult {
	client := e.Locate(ctx, addr)
	if !client.Succeeded {
		return nil
	}

	venueLocations := e.batch.GeocodeAll(ctx, venues)

	results := make([]MatchResult, 0, len(venues))

	for _, venue := range venues {
		location, dispatched := venueLocations[venue.ID]
		if !dispatched {
			// Filtered out before dispatch: no name to match on.
			continue
		}

		result := ScoreMatch(client, location, venue)
		if result.Score >= MatchThreshold {
			results = append(results, result)
		}
	}

	SortMatches(results)

	return results
}

// Locate resolves the client's own location. With an empty addr the
// public address is discovered first; if no echo endpoint answers, the
// resolver chain still runs so its last-resort provider can attempt a
// self-lookup.
func (e *Engine) Locate(ctx context.Context, addr string) Location {
	if addr == "" {
		discovered, err := e.public.Discover(ctx)
		if err != nil {
			e.logger.Skip("public_address_unknown", err.Error())
		} else {
			addr = discovered
		}
	}

	return e.resolver.Resolve(ctx, addr)
}

func NewEngine(public *PublicAddressResolver,
	resolver *Resolver,
	batch *BatchGeocoder,
	logger Logger) *Engine {
	return &Engine{
		public:   public,
		resolver: resolver,
		batch:    batch,
		logger:   logger,
	}
}
