package providers

import "errors"

var (
	// ErrAPIKeyIsRequired is returned if you are trying to initialize a
	// keyed provider without its key.
	ErrAPIKeyIsRequired = errors.New("api key is required")

	// ErrAddressIsRequired is returned by providers which cannot look up
	// anything without an explicit address.
	ErrAddressIsRequired = errors.New("address is required")
)
