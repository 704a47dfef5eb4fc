package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fieldtrack/geomatch/geolib"
)

const NameAmapGeocode = "amap_geocode"

type amapGeocodeResponse struct {
	Status   string `json:"status"`
	Info     string `json:"info"`
	Count    string `json:"count"`
	Geocodes []struct {
		FormattedAddress flexString `json:"formatted_address"`
		Country          flexString `json:"country"`
		Province         flexString `json:"province"`
		// City and district come back as empty arrays for addresses the
		// upstream half-recognizes, hence the coercion.
		City     flexString `json:"city"`
		District flexString `json:"district"`
		Location flexString `json:"location"`
	} `json:"geocodes"`
}

type amapGeocodeProvider struct {
	apiKey string
	client geolib.HTTPClient
}

func (a amapGeocodeProvider) Name() string {
	return NameAmapGeocode
}

func (a amapGeocodeProvider) Geocode(ctx context.Context, address string) (geolib.GeocodeResult, error) {
	result := geolib.GeocodeResult{}

	getQuery := url.Values{}
	getQuery.Set("key", a.apiKey)
	getQuery.Set("address", address)
	getQuery.Set("output", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://restapi.amap.com/v3/geocode/geo?"+getQuery.Encode(), nil)
	if err != nil {
		return result, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	jsonResponse := amapGeocodeResponse{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&jsonResponse); err != nil {
		return result, fmt.Errorf("cannot parse a response: %w", err)
	}

	if jsonResponse.Status != "1" || jsonResponse.Count == "0" || len(jsonResponse.Geocodes) == 0 {
		return result, fmt.Errorf("failed response: %s", jsonResponse.Info)
	}

	// Only the first candidate is ever used.
	geocode := jsonResponse.Geocodes[0]

	locationStr := geocode.Location.String()
	if locationStr == "" {
		return result, fmt.Errorf("no coordinates for %q", address)
	}

	chunks := strings.SplitN(locationStr, ",", 2)
	if len(chunks) != 2 {
		return result, fmt.Errorf("malformed coordinates %q", locationStr)
	}

	// The upstream serializes coordinates as "lon,lat".
	result.Longitude = parseCoordinate(chunks[0])
	result.Latitude = parseCoordinate(chunks[1])

	if result.Longitude == nil || result.Latitude == nil {
		return result, fmt.Errorf("malformed coordinates %q", locationStr)
	}

	result.City = geocode.City.String()
	result.Region = geocode.Province.String()
	result.Country = geocode.Country.String()
	result.District = geocode.District.String()
	result.FormattedAddress = geocode.FormattedAddress.String()
	result.SourceAddr = address
	result.Succeeded = true

	return result, nil
}

func NewAmapGeocode(client geolib.HTTPClient, apiKey string) (geolib.GeocodeProvider, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyIsRequired
	}

	return amapGeocodeProvider{
		apiKey: apiKey,
		client: client,
	}, nil
}
