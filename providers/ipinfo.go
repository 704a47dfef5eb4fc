package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fieldtrack/geomatch/geolib"
)

const NameIPInfo = "ipinfo"

type ipinfoResponse struct {
	IP       string `json:"ip"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Loc      string `json:"loc"`
	Timezone string `json:"timezone"`
	Org      string `json:"org"`
}

type ipinfoProvider struct {
	client geolib.HTTPClient
}

func (i ipinfoProvider) Name() string {
	return NameIPInfo
}

func (i ipinfoProvider) Lookup(ctx context.Context, addr string) (geolib.Location, error) {
	result := geolib.Location{}

	if addr == "" {
		return result, ErrAddressIsRequired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://ipinfo.io/"+addr+"/json", nil)
	if err != nil {
		return result, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	jsonResponse := ipinfoResponse{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&jsonResponse); err != nil {
		return result, fmt.Errorf("cannot parse a response: %w", err)
	}

	if jsonResponse.City == "" && jsonResponse.Region == "" {
		return result, fmt.Errorf("incomplete response for %s", addr)
	}

	result.City = jsonResponse.City
	result.Region = jsonResponse.Region
	result.Country = jsonResponse.Country
	result.CountryCode = jsonResponse.Country
	result.Timezone = jsonResponse.Timezone
	result.ISP = jsonResponse.Org
	result.SourceAddr = addr

	if jsonResponse.IP != "" {
		result.SourceAddr = jsonResponse.IP
	}

	// Coordinates arrive as a single "lat,lon" string.
	if chunks := strings.SplitN(jsonResponse.Loc, ",", 2); len(chunks) == 2 {
		result.Latitude = parseCoordinate(chunks[0])
		result.Longitude = parseCoordinate(chunks[1])
	}

	result.Succeeded = true

	return result, nil
}

func NewIPInfo(client geolib.HTTPClient) geolib.IPProvider {
	return ipinfoProvider{
		client: client,
	}
}
