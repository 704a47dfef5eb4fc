package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/fieldtrack/geomatch/geolib"
)

// VenueSource is the narrow surface of the external venue/project store.
// The matcher never talks to a database directly; it only needs the
// candidate list.
type VenueSource interface {
	Venues(ctx context.Context) ([]geolib.VenueQuery, error)
}

type handlers struct {
	engine *geolib.Engine
	venues VenueSource
	stats  func() []*geolib.UsageStats
}

// MakeServer builds the HTTP surface: GET /self resolves the caller's
// location, POST /match ranks venues, GET /info dumps provider usage
// counters.
func MakeServer(engine *geolib.Engine, venues VenueSource, stats func() []*geolib.UsageStats) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(middleware.SetHeader("Content-Type", "application/json"))

	h := handlers{
		engine: engine,
		venues: venues,
		stats:  stats,
	}

	router.Get("/self", h.handleSelf)
	router.Post("/match", h.handleMatch)
	router.Get("/info", h.handleInfo)

	return router
}

func (h handlers) handleSelf(w http.ResponseWriter, req *http.Request) {
	location := h.engine.Locate(req.Context(), req.URL.Query().Get("addr"))

	encodeJSON(w, selfResponseStruct{Result: location})
}

func (h handlers) handleMatch(w http.ResponseWriter, req *http.Request) {
	request := matchRequestStruct{}

	decoder := json.NewDecoder(req.Body)
	if err := decoder.Decode(&request); err != nil {
		abort(w, http.StatusBadRequest, "cannot parse a request body")

		return
	}

	venues := request.Venues
	if len(venues) == 0 && h.venues != nil {
		stored, err := h.venues.Venues(req.Context())
		if err != nil {
			abort(w, http.StatusInternalServerError, "cannot load venues")

			return
		}

		venues = stored
	}

	response := matchResponseStruct{}
	response.Build(h.engine.Match(req.Context(), request.Addr, venues))

	encodeJSON(w, response)
}

func (h handlers) handleInfo(w http.ResponseWriter, req *http.Request) {
	encodeJSON(w, infoResponseStruct{Results: h.stats()})
}

func encodeJSON(w http.ResponseWriter, data interface{}) {
	encoder := json.NewEncoder(w)

	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func abort(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	encodeJSON(w, errorResponseStruct{Error: message})
}
