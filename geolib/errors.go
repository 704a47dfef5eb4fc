package geolib

import "errors"

var (
	// ErrNoProviders is returned by constructors given an empty chain.
	ErrNoProviders = errors.New("at least one provider is required")

	// ErrPublicAddressUnknown is returned when every echo endpoint in
	// the chain failed to report an address.
	ErrPublicAddressUnknown = errors.New("cannot discover public address")

	// ErrCircuitOpened is returned by the HTTP client while its circuit
	// breaker keeps an upstream blocked.
	ErrCircuitOpened = errors.New("circuit breaker is opened")
)
