package providers_test

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"

	"github.com/fieldtrack/geomatch/geolib"
)

type ProviderTestSuite struct {
	suite.Suite

	http geolib.HTTPClient
}

func (suite *ProviderTestSuite) SetupTest() {
	suite.http = geolib.NewHTTPClient(&http.Client{},
		"test-agent",
		time.Millisecond,
		100,
		1000,
		time.Minute)
}

type MockedProviderTestSuite struct {
	ProviderTestSuite
}

func (suite *MockedProviderTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedProviderTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedProviderTestSuite) TearDownTest() {
	httpmock.Reset()
}

func apiKeyFromEnv(t *testing.T, name string) string {
	value := os.Getenv(name)
	if value == "" {
		t.Skipf("%s is not set", name)
	}

	return value
}
