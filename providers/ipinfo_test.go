package providers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"

	"github.com/fieldtrack/geomatch/providers"
)

type MockedIPInfoTestSuite struct {
	MockedProviderTestSuite
}

func (suite *MockedIPInfoTestSuite) Register(addr, body string) {
	httpmock.RegisterResponder("GET", "https://ipinfo.io/"+addr+"/json",
		httpmock.NewStringResponder(http.StatusOK, body))
}

func (suite *MockedIPInfoTestSuite) TestEmptyAddress() {
	_, err := providers.NewIPInfo(suite.http).Lookup(context.Background(), "")

	suite.ErrorIs(err, providers.ErrAddressIsRequired)
}

func (suite *MockedIPInfoTestSuite) TestOK() {
	suite.Register("23.22.13.113", `{
		"ip": "23.22.13.113",
		"city": "Ashburn",
		"region": "Virginia",
		"country": "US",
		"loc": "39.0437,-77.4875",
		"org": "AS14618 Amazon.com, Inc.",
		"timezone": "America/New_York"
	}`)

	loc, err := providers.NewIPInfo(suite.http).Lookup(context.Background(), "23.22.13.113")

	suite.NoError(err)
	suite.True(loc.Succeeded)
	suite.Equal("Ashburn", loc.City)
	suite.Equal("Virginia", loc.Region)
	suite.Equal("US", loc.Country)
	suite.Equal("23.22.13.113", loc.SourceAddr)
	suite.Equal("America/New_York", loc.Timezone)

	suite.Require().NotNil(loc.Latitude)
	suite.Require().NotNil(loc.Longitude)
	suite.InDelta(39.0437, *loc.Latitude, 1e-6)
	suite.InDelta(-77.4875, *loc.Longitude, 1e-6)
}

func (suite *MockedIPInfoTestSuite) TestNoLoc() {
	suite.Register("23.22.13.113", `{
		"ip": "23.22.13.113",
		"city": "Ashburn",
		"region": "Virginia",
		"country": "US"
	}`)

	loc, err := providers.NewIPInfo(suite.http).Lookup(context.Background(), "23.22.13.113")

	suite.NoError(err)
	suite.True(loc.Succeeded)
	suite.Nil(loc.Latitude)
	suite.Nil(loc.Longitude)
}

func (suite *MockedIPInfoTestSuite) TestIncomplete() {
	suite.Register("23.22.13.113", `{"ip": "23.22.13.113", "bogon": true}`)

	loc, err := providers.NewIPInfo(suite.http).Lookup(context.Background(), "23.22.13.113")

	suite.Error(err)
	suite.False(loc.Succeeded)
}

func TestIPInfo(t *testing.T) {
	suite.Run(t, &MockedIPInfoTestSuite{})
}

type IntegrationIPInfoTestSuite struct {
	ProviderTestSuite
}

func (suite *IntegrationIPInfoTestSuite) TestLookup() {
	loc, err := providers.NewIPInfo(suite.http).Lookup(context.Background(), "8.8.8.8")

	suite.NoError(err)
	suite.True(loc.Succeeded)
}

func TestIntegrationIPInfo(t *testing.T) {
	if testing.Short() {
		t.Skip("integration tests are skipped in short mode")
	}

	suite.Run(t, &IntegrationIPInfoTestSuite{})
}
