package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/fieldtrack/geomatch/geolib"
)

type logger struct {
	lookupLog  zerolog.Logger
	geocodeLog zerolog.Logger
	skipLog    zerolog.Logger
}

func (l *logger) LookupError(provider, addr string, err error) {
	l.lookupLog.Error().Str("provider", provider).Str("addr", addr).Err(err).Msg("")
}

func (l *logger) GeocodeError(provider, query string, err error) {
	l.geocodeLog.Error().Str("provider", provider).Str("query", query).Err(err).Msg("")
}

func (l *logger) Skip(reason, subject string) {
	l.skipLog.Debug().Str("reason", reason).Str("subject", subject).Msg("")
}

func newLogger() geolib.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return &logger{
		lookupLog:  zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "lookup").Logger(),
		geocodeLog: zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "geocode").Logger(),
		skipLog:    zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "skip").Logger(),
	}
}
