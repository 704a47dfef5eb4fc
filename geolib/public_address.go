package geolib

import (
	"context"
	"time"
)

const DefaultDiscoverTimeout = 3 * time.Second

// PublicAddressResolver discovers the caller's own externally visible
// address through a chain of echo endpoints. Same suppress-and-advance
// discipline as Resolver: a failing endpoint is logged and skipped, the
// first answer wins.
type PublicAddressResolver struct {
	providers []EchoProvider
	timeout   time.Duration
	logger    Logger
}

func (p *PublicAddressResolver) Discover(ctx context.Context) (string, error) {
	for _, provider := range p.providers {
		providerCtx, cancel := context.WithTimeout(ctx, p.timeout)
		addr, err := provider.Discover(providerCtx)

		cancel()

		if err != nil {
			p.logger.LookupError(provider.Name(), "", err)

			continue
		}

		if addr != "" {
			return addr, nil
		}
	}

	return "", ErrPublicAddressUnknown
}

func NewPublicAddressResolver(providers []EchoProvider,
	timeout time.Duration,
	logger Logger) (*PublicAddressResolver, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	if timeout <= 0 {
		timeout = DefaultDiscoverTimeout
	}

	return &PublicAddressResolver{
		providers: providers,
		timeout:   timeout,
		logger:    logger,
	}, nil
}
