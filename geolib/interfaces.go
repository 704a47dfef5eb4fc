package geolib

import (
	"context"
	"net/http"
)

// IPProvider is an adapter around one external IP-geolocation API. Each
// implementation owns parsing and normalization of its own response
// schema. Providers that cannot work without an address must fail fast
// when addr is empty; the last-resort self-lookup provider accepts it.
type IPProvider interface {
	Name() string
	Lookup(ctx context.Context, addr string) (Location, error)
}

// EchoProvider discovers the caller's own externally visible network
// address through a public echo endpoint.
type EchoProvider interface {
	Name() string
	Discover(ctx context.Context) (string, error)
}

// GeocodeProvider turns a free-text address query into a location. Only
// the first candidate returned by the upstream is used.
type GeocodeProvider interface {
	Name() string
	Geocode(ctx context.Context, address string) (GeocodeResult, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Logger is the narrow logging surface geolib needs. The binary wires a
// zerolog-backed implementation; tests use mocks.
type Logger interface {
	LookupError(provider, addr string, err error)
	GeocodeError(provider, query string, err error)
	Skip(reason, subject string)
}
