package geolib_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"

	"github.com/fieldtrack/geomatch/geolib"
)

type CacheTestSuite struct {
	suite.Suite

	clock *clockwork.FakeClock
	cache *geolib.Cache[string]
}

func (suite *CacheTestSuite) SetupTest() {
	suite.clock = clockwork.NewFakeClock()
	suite.cache = geolib.NewCacheWithClock[string](3, time.Hour, suite.clock)
}

func (suite *CacheTestSuite) TestGetAfterPut() {
	suite.cache.Put("key", "value")

	value, ok := suite.cache.Get("key")

	suite.True(ok)
	suite.Equal("value", value)
}

func (suite *CacheTestSuite) TestMiss() {
	_, ok := suite.cache.Get("nothing")

	suite.False(ok)
}

func (suite *CacheTestSuite) TestStaleEntryIsAMiss() {
	suite.cache.Put("key", "value")

	suite.clock.Advance(time.Hour)

	_, ok := suite.cache.Get("key")

	suite.False(ok)
	suite.Equal(0, suite.cache.Len())
}

func (suite *CacheTestSuite) TestEntryJustBeforeTTL() {
	suite.cache.Put("key", "value")

	suite.clock.Advance(time.Hour - time.Second)

	_, ok := suite.cache.Get("key")

	suite.True(ok)
}

func (suite *CacheTestSuite) TestOldestIsEvictedFirst() {
	suite.cache.Put("first", "1")
	suite.clock.Advance(time.Minute)
	suite.cache.Put("second", "2")
	suite.clock.Advance(time.Minute)
	suite.cache.Put("third", "3")
	suite.clock.Advance(time.Minute)
	suite.cache.Put("fourth", "4")

	_, ok := suite.cache.Get("first")

	suite.False(ok)
	suite.Equal(3, suite.cache.Len())

	for _, key := range []string{"second", "third", "fourth"} {
		_, ok := suite.cache.Get(key)
		suite.True(ok, key)
	}
}

func (suite *CacheTestSuite) TestCapacityIsNeverExceeded() {
	for i := 0; i < 20; i++ {
		suite.cache.Put("key"+strconv.Itoa(i), "value")
		suite.LessOrEqual(suite.cache.Len(), 3)
		suite.clock.Advance(time.Second)
	}
}

func (suite *CacheTestSuite) TestPutRefreshesInsertionTime() {
	suite.cache.Put("first", "1")
	suite.clock.Advance(time.Minute)
	suite.cache.Put("second", "2")
	suite.clock.Advance(time.Minute)
	suite.cache.Put("third", "3")
	suite.clock.Advance(time.Minute)

	// "first" is refreshed, so "second" becomes the oldest.
	suite.cache.Put("first", "1-again")
	suite.cache.Put("fourth", "4")

	_, ok := suite.cache.Get("second")
	suite.False(ok)

	value, ok := suite.cache.Get("first")
	suite.True(ok)
	suite.Equal("1-again", value)
}

func TestCache(t *testing.T) {
	suite.Run(t, &CacheTestSuite{})
}
