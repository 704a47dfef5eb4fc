package geolib_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fieldtrack/geomatch/geolib"
)

type IPProviderMock struct {
	mock.Mock
}

func (m *IPProviderMock) Name() string {
	return m.Called().String(0)
}

func (m *IPProviderMock) Lookup(ctx context.Context, addr string) (geolib.Location, error) {
	args := m.Called(ctx, addr)

	return args.Get(0).(geolib.Location), args.Error(1)
}

type EchoProviderMock struct {
	mock.Mock
}

func (m *EchoProviderMock) Name() string {
	return m.Called().String(0)
}

func (m *EchoProviderMock) Discover(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

type GeocodeProviderMock struct {
	mock.Mock
}

func (m *GeocodeProviderMock) Name() string {
	return m.Called().String(0)
}

func (m *GeocodeProviderMock) Geocode(ctx context.Context, address string) (geolib.GeocodeResult, error) {
	args := m.Called(ctx, address)

	return args.Get(0).(geolib.GeocodeResult), args.Error(1)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(provider, addr string, err error) {
	m.Called(provider, addr, err)
}

func (m *LoggerMock) GeocodeError(provider, query string, err error) {
	m.Called(provider, query, err)
}

func (m *LoggerMock) Skip(reason, subject string) {
	m.Called(reason, subject)
}

func newQuietLogger() *LoggerMock {
	logMock := &LoggerMock{}

	logMock.On("LookupError", mock.Anything, mock.Anything, mock.Anything).Maybe()
	logMock.On("GeocodeError", mock.Anything, mock.Anything, mock.Anything).Maybe()
	logMock.On("Skip", mock.Anything, mock.Anything).Maybe()

	return logMock
}

func float64Ref(value float64) *float64 {
	return &value
}
