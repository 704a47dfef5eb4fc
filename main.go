package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/fieldtrack/geomatch/api"
	"github.com/fieldtrack/geomatch/geolib"
	"github.com/fieldtrack/geomatch/providers"
	"github.com/fieldtrack/geomatch/store"
)

var (
	app = kingpin.New(
		"geomatch",
		"Resolves client locations and ranks venues by how well they match")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("GEOMATCH_DEBUG").
		Bool()
	configFile = app.Arg("config-path", "Path to the config.").
			Required().
			ExistingFile()
)

func init() {
	app.Version("0.1.0")
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	conf, err := parseConfig(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse config")
	}

	appLogger := newLogger()

	newHTTPClient := func(timeout time.Duration) geolib.HTTPClient {
		return geolib.NewHTTPClient(&http.Client{Timeout: timeout},
			conf.GetUserAgent(),
			conf.GetRateLimitInterval(),
			conf.GetRateLimitBurst(),
			geolib.DefaultCircuitBreakerThreshold,
			geolib.DefaultCircuitBreakerCooldown)
	}

	echoClient := newHTTPClient(conf.GetDiscoverTimeout())
	lookupClient := newHTTPClient(conf.GetLookupTimeout())
	geocodeClient := newHTTPClient(conf.GetGeocodeTimeout())

	public, err := geolib.NewPublicAddressResolver(
		providers.DefaultEchoProviders(echoClient),
		conf.GetDiscoverTimeout(),
		appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build public address resolver")
	}

	ipProviders := []geolib.IPProvider{}

	if amap, err := providers.NewAmapIP(lookupClient, conf.AmapAPIKey); err == nil {
		ipProviders = append(ipProviders, amap)
	} else {
		log.Debug().Msg("amap ip provider is disabled, no api key")
	}

	ipProviders = append(ipProviders,
		providers.NewIPInfo(lookupClient),
		providers.NewIPAPICo(lookupClient),
		providers.NewIPSB(lookupClient))

	resolver, err := geolib.NewResolver(ipProviders,
		geolib.NewCache[geolib.Location](conf.GetAddressCacheSize(), conf.GetCacheTTL()),
		conf.GetLookupTimeout(),
		appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build resolver")
	}

	var geocodeProvider geolib.GeocodeProvider

	if provider, err := providers.NewAmapGeocode(geocodeClient, conf.AmapAPIKey); err == nil {
		geocodeProvider = provider
	} else {
		log.Debug().Msg("geocoding is disabled, no api key")
	}

	geocoder := geolib.NewGeocoder(geocodeProvider,
		geolib.NewCache[geolib.GeocodeResult](conf.GetGeocodeCacheSize(), conf.GetCacheTTL()),
		conf.GetGeocodeTimeout(),
		appLogger)

	batch := geolib.NewBatchGeocoder(geocoder, conf.GetWorkerPoolSize(), appLogger)
	engine := geolib.NewEngine(public, resolver, batch, appLogger)

	var venueSource api.VenueSource

	if conf.VenueDBPath != "" {
		sqliteStore, err := store.NewSQLiteStore(conf.VenueDBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot open venue store")
		}

		defer sqliteStore.Close()

		venueSource = sqliteStore
	}

	router := api.MakeServer(engine, venueSource, resolver.Stats)
	srv := &http.Server{
		Addr:    conf.GetListen(),
		Handler: wrapBasicAuth(router, conf.BasicAuthUser, conf.BasicAuthPassword),
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		srv.Shutdown(ctx) // nolint: errcheck
	}()

	log.Info().Str("listen", conf.GetListen()).Msg("starting server")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server failed")
	}
}
