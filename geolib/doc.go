// Package geolib resolves network addresses to approximate locations and
// ranks candidate venues by how well they match.
//
// geolib is the core of the geomatch project. The rest of the repository
// can be read as an example of how to use it: how to wire providers, how
// to pass parameters from HTTP requests, how to serialize results.
//
// Engine is the main entity. It resolves the client's location through a
// chain of interchangeable IP-geolocation providers (caching successes,
// degrading gracefully through failures), geocodes candidate venues on a
// bounded worker pool, and scores every candidate with a tiered
// text/distance algorithm before ranking.
package geolib
