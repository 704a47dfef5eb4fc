package geolib

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const DefaultBatchPoolSize = 5

type geocodeTask struct {
	ctx           context.Context
	query         VenueQuery
	resultChannel chan<- VenueLocation
	wg            *sync.WaitGroup
}

// BatchGeocoder runs the Geocoder over a set of venue queries on a
// bounded worker pool. The pool is created per invocation and released
// when every dispatched query has completed. Results are collected as
// they finish, independent of submission order; a slow or failing query
// only occupies its own worker slot.
type BatchGeocoder struct {
	geocoder *Geocoder
	poolSize int
	logger   Logger
}

// GeocodeAll geocodes every query that carries a usable keyword and
// returns a map keyed by venue id. Queries with neither a hospital name
// nor a display name are filtered out before dispatch and never appear
// in the map. A per-query failure is recorded as a failed VenueLocation
// for that id and does not affect sibling queries.
func (b *BatchGeocoder) GeocodeAll(ctx context.Context, queries []VenueQuery) map[string]VenueLocation {
	valid := make([]VenueQuery, 0, len(queries))

	for _, query := range queries {
		if query.Keyword() == "" {
			b.logger.Skip("venue_without_name", query.ID)

			continue
		}

		valid = append(valid, query)
	}

	rv := make(map[string]VenueLocation, len(valid))

	if len(valid) == 0 {
		return rv
	}

	resultChannel := make(chan VenueLocation, len(valid))
	wg := &sync.WaitGroup{}

	pool, err := ants.NewPoolWithFunc(b.poolSize, b.runTask)
	if err != nil {
		// A pool cannot fail to start with a positive size; degrade to
		// sequential lookups rather than dropping the batch.
		for _, query := range valid {
			rv[query.ID] = VenueLocation{
				VenueID: query.ID,
				Geocode: b.geocoder.Geocode(ctx, query),
			}
		}

		return rv
	}

	defer pool.Release()

	for _, query := range valid {
		wg.Add(1)

		task := &geocodeTask{
			ctx:           ctx,
			query:         query,
			resultChannel: resultChannel,
			wg:            wg,
		}

		if err := pool.Invoke(task); err != nil {
			wg.Done()

			b.logger.GeocodeError("batch", query.ID, err)

			rv[query.ID] = VenueLocation{VenueID: query.ID}
		}
	}

	go func() {
		wg.Wait()
		close(resultChannel)
	}()

	for result := range resultChannel {
		rv[result.VenueID] = result
	}

	return rv
}

func (b *BatchGeocoder) runTask(args interface{}) {
	task := args.(*geocodeTask)
	defer task.wg.Done()

	task.resultChannel <- VenueLocation{
		VenueID: task.query.ID,
		Geocode: b.geocoder.Geocode(task.ctx, task.query),
	}
}

func NewBatchGeocoder(geocoder *Geocoder, poolSize int, logger Logger) *BatchGeocoder {
	if poolSize <= 0 {
		poolSize = DefaultBatchPoolSize
	}

	return &BatchGeocoder{
		geocoder: geocoder,
		poolSize: poolSize,
		logger:   logger,
	}
}
