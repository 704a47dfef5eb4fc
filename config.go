package main

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hjson/hjson-go/v4"

	"github.com/fieldtrack/geomatch/geolib"
)

const (
	DefaultListen    = "127.0.0.1:8000"
	DefaultUserAgent = "geomatch/0.1"
)

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	dur, err := time.ParseDuration(vv)
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	d.Duration = dur

	return nil
}

type config struct {
	Listen            string   `json:"listen"`
	UserAgent         string   `json:"user_agent"`
	AmapAPIKey        string   `json:"amap_api_key"`
	CacheTTL          duration `json:"cache_ttl"`
	AddressCacheSize  int      `json:"address_cache_size"`
	GeocodeCacheSize  int      `json:"geocode_cache_size"`
	WorkerPoolSize    int      `json:"worker_pool_size"`
	DiscoverTimeout   duration `json:"discover_timeout"`
	LookupTimeout     duration `json:"lookup_timeout"`
	GeocodeTimeout    duration `json:"geocode_timeout"`
	RateLimitInterval duration `json:"rate_limit_interval"`
	RateLimitBurst    int      `json:"rate_limit_burst"`
	BasicAuthUser     string   `json:"basic_auth_user"`
	BasicAuthPassword string   `json:"basic_auth_password"`
	VenueDBPath       string   `json:"venue_db_path"`
}

func (c config) GetListen() string {
	if c.Listen == "" {
		return DefaultListen
	}

	return c.Listen
}

func (c config) GetUserAgent() string {
	if c.UserAgent == "" {
		return DefaultUserAgent
	}

	return c.UserAgent
}

func (c config) GetCacheTTL() time.Duration {
	if c.CacheTTL.Duration == 0 {
		return geolib.DefaultCacheTTL
	}

	return c.CacheTTL.Duration
}

func (c config) GetAddressCacheSize() int {
	if c.AddressCacheSize == 0 {
		return geolib.DefaultAddressCacheEntries
	}

	return c.AddressCacheSize
}

func (c config) GetGeocodeCacheSize() int {
	if c.GeocodeCacheSize == 0 {
		return geolib.DefaultGeocodeCacheEntries
	}

	return c.GeocodeCacheSize
}

func (c config) GetWorkerPoolSize() int {
	if c.WorkerPoolSize == 0 {
		return geolib.DefaultBatchPoolSize
	}

	return c.WorkerPoolSize
}

func (c config) GetDiscoverTimeout() time.Duration {
	if c.DiscoverTimeout.Duration == 0 {
		return geolib.DefaultDiscoverTimeout
	}

	return c.DiscoverTimeout.Duration
}

func (c config) GetLookupTimeout() time.Duration {
	if c.LookupTimeout.Duration == 0 {
		return geolib.DefaultLookupTimeout
	}

	return c.LookupTimeout.Duration
}

func (c config) GetGeocodeTimeout() time.Duration {
	if c.GeocodeTimeout.Duration == 0 {
		return geolib.DefaultGeocodeTimeout
	}

	return c.GeocodeTimeout.Duration
}

func (c config) GetRateLimitInterval() time.Duration {
	if c.RateLimitInterval.Duration == 0 {
		return geolib.DefaultRateLimitInterval
	}

	return c.RateLimitInterval.Duration
}

func (c config) GetRateLimitBurst() int {
	if c.RateLimitBurst == 0 {
		return geolib.DefaultRateLimitBurst
	}

	return c.RateLimitBurst
}

func parseConfig(path string) (*config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	conf := config{}
	rawMap := map[string]interface{}{}

	if err := hjson.Unmarshal(content, &rawMap); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}

	rawBytes, _ := json.Marshal(rawMap)

	if err := json.Unmarshal(rawBytes, &conf); err != nil {
		return nil, fmt.Errorf("cannot map config: %w", err)
	}

	if _, _, err := net.SplitHostPort(conf.GetListen()); err != nil {
		return nil, fmt.Errorf("incorrect host:port for listen: %w", err)
	}

	return &conf, nil
}
