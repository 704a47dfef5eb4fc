package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fieldtrack/geomatch/geolib"
)

const NameIPAPICo = "ipapi_co"

type ipapicoResponse struct {
	Error       bool     `json:"error"`
	Reason      string   `json:"reason"`
	IP          string   `json:"ip"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	CountryName string   `json:"country_name"`
	CountryCode string   `json:"country_code"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Timezone    string   `json:"timezone"`
	Org         string   `json:"org"`
}

type ipapicoProvider struct {
	client geolib.HTTPClient
}

func (i ipapicoProvider) Name() string {
	return NameIPAPICo
}

func (i ipapicoProvider) Lookup(ctx context.Context, addr string) (geolib.Location, error) {
	result := geolib.Location{}

	if addr == "" {
		return result, ErrAddressIsRequired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://ipapi.co/"+addr+"/json/", nil)
	if err != nil {
		return result, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	jsonResponse := ipapicoResponse{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&jsonResponse); err != nil {
		return result, fmt.Errorf("cannot parse a response: %w", err)
	}

	if jsonResponse.Error {
		return result, fmt.Errorf("failed response: %s", jsonResponse.Reason)
	}

	result.City = jsonResponse.City
	result.Region = jsonResponse.Region
	result.Country = jsonResponse.CountryName
	result.CountryCode = jsonResponse.CountryCode
	result.Latitude = jsonResponse.Latitude
	result.Longitude = jsonResponse.Longitude
	result.Timezone = jsonResponse.Timezone
	result.ISP = jsonResponse.Org
	result.SourceAddr = addr

	if jsonResponse.IP != "" {
		result.SourceAddr = jsonResponse.IP
	}

	result.Succeeded = true

	return result, nil
}

func NewIPAPICo(client geolib.HTTPClient) geolib.IPProvider {
	return ipapicoProvider{
		client: client,
	}
}
