package geolib_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fieldtrack/geomatch/geolib"
)

type ResolverTestSuite struct {
	suite.Suite

	first    *IPProviderMock
	second   *IPProviderMock
	cache    *geolib.Cache[geolib.Location]
	logMock  *LoggerMock
	resolver *geolib.Resolver
}

func (suite *ResolverTestSuite) SetupTest() {
	suite.first = &IPProviderMock{}
	suite.second = &IPProviderMock{}
	suite.first.On("Name").Return("first").Maybe()
	suite.second.On("Name").Return("second").Maybe()

	suite.cache = geolib.NewCache[geolib.Location](10, time.Hour)
	suite.logMock = newQuietLogger()

	resolver, err := geolib.NewResolver(
		[]geolib.IPProvider{suite.first, suite.second},
		suite.cache, time.Second, suite.logMock)

	suite.NoError(err)

	suite.resolver = resolver
}

func (suite *ResolverTestSuite) TearDownTest() {
	suite.first.AssertExpectations(suite.T())
	suite.second.AssertExpectations(suite.T())
}

func (suite *ResolverTestSuite) TestFirstProviderWins() {
	location := geolib.Location{City: "北京市", SourceAddr: "1.2.3.4", Succeeded: true}

	suite.first.On("Lookup", mock.Anything, "1.2.3.4").Return(location, nil).Once()

	resolved := suite.resolver.Resolve(context.Background(), "1.2.3.4")

	suite.Equal(location, resolved)
}

func (suite *ResolverTestSuite) TestFailureAdvancesChain() {
	location := geolib.Location{City: "上海市", SourceAddr: "1.2.3.4", Succeeded: true}

	suite.first.On("Lookup", mock.Anything, "1.2.3.4").
		Return(geolib.Location{}, errors.New("boom")).Once()
	suite.second.On("Lookup", mock.Anything, "1.2.3.4").Return(location, nil).Once()

	resolved := suite.resolver.Resolve(context.Background(), "1.2.3.4")

	suite.Equal(location, resolved)
}

func (suite *ResolverTestSuite) TestEmptySuccessAdvancesChain() {
	location := geolib.Location{City: "上海市", SourceAddr: "1.2.3.4", Succeeded: true}

	// Succeeded but with no place fields: treated as a miss.
	suite.first.On("Lookup", mock.Anything, "1.2.3.4").
		Return(geolib.Location{Succeeded: true}, nil).Once()
	suite.second.On("Lookup", mock.Anything, "1.2.3.4").Return(location, nil).Once()

	resolved := suite.resolver.Resolve(context.Background(), "1.2.3.4")

	suite.Equal(location, resolved)
}

func (suite *ResolverTestSuite) TestAllFailedEchoesKey() {
	suite.first.On("Lookup", mock.Anything, "1.2.3.4").
		Return(geolib.Location{}, errors.New("boom")).Once()
	suite.second.On("Lookup", mock.Anything, "1.2.3.4").
		Return(geolib.Location{}, errors.New("boom")).Once()

	resolved := suite.resolver.Resolve(context.Background(), "1.2.3.4")

	suite.False(resolved.Succeeded)
	suite.Equal("1.2.3.4", resolved.SourceAddr)
	suite.Empty(resolved.City)
}

func (suite *ResolverTestSuite) TestSuccessIsCached() {
	location := geolib.Location{City: "北京市", SourceAddr: "1.2.3.4", Succeeded: true}

	suite.first.On("Lookup", mock.Anything, "1.2.3.4").Return(location, nil).Once()

	suite.resolver.Resolve(context.Background(), "1.2.3.4")
	resolved := suite.resolver.Resolve(context.Background(), "1.2.3.4")

	suite.Equal(location, resolved)
	suite.first.AssertNumberOfCalls(suite.T(), "Lookup", 1)
}

func (suite *ResolverTestSuite) TestFailureIsNotCached() {
	location := geolib.Location{City: "北京市", SourceAddr: "1.2.3.4", Succeeded: true}

	suite.first.On("Lookup", mock.Anything, "1.2.3.4").
		Return(geolib.Location{}, errors.New("boom")).Twice()
	suite.second.On("Lookup", mock.Anything, "1.2.3.4").
		Return(geolib.Location{}, errors.New("boom")).Once()

	suite.resolver.Resolve(context.Background(), "1.2.3.4")

	suite.second.On("Lookup", mock.Anything, "1.2.3.4").Return(location, nil).Once()

	resolved := suite.resolver.Resolve(context.Background(), "1.2.3.4")

	suite.Equal(location, resolved)
}

func (suite *ResolverTestSuite) TestEmptyAddrSkipsCache() {
	location := geolib.Location{City: "北京市", SourceAddr: "5.6.7.8", Succeeded: true}

	suite.first.On("Lookup", mock.Anything, "").Return(location, nil).Twice()

	suite.resolver.Resolve(context.Background(), "")
	suite.resolver.Resolve(context.Background(), "")

	suite.Equal(0, suite.cache.Len())
}

func (suite *ResolverTestSuite) TestStats() {
	suite.first.On("Lookup", mock.Anything, "1.2.3.4").
		Return(geolib.Location{}, errors.New("boom")).Once()
	suite.second.On("Lookup", mock.Anything, "1.2.3.4").
		Return(geolib.Location{City: "x", Succeeded: true, SourceAddr: "1.2.3.4"}, nil).Once()

	suite.resolver.Resolve(context.Background(), "1.2.3.4")

	stats := suite.resolver.Stats()

	suite.Len(stats, 2)
	suite.Equal("first", stats[0].Name)
	suite.Equal("second", stats[1].Name)
}

func TestResolver(t *testing.T) {
	suite.Run(t, &ResolverTestSuite{})
}

func TestNewResolverWithoutProviders(t *testing.T) {
	_, err := geolib.NewResolver(nil,
		geolib.NewCache[geolib.Location](10, time.Hour),
		time.Second, newQuietLogger())

	if !errors.Is(err, geolib.ErrNoProviders) {
		t.Fatalf("expected ErrNoProviders, got %v", err)
	}
}
