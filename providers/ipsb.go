package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fieldtrack/geomatch/geolib"
)

const NameIPSB = "ipsb"

type ipsbResponse struct {
	IP          string   `json:"ip"`
	City        string   `json:"city"`
	Region      string   `json:"region"`
	Country     string   `json:"country"`
	CountryCode string   `json:"country_code"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Timezone    string   `json:"timezone"`
	ISP         string   `json:"isp"`
}

// ipsbProvider is the last resort in the lookup chain. Unlike the
// others it accepts an empty address and lets the upstream locate the
// requester itself, which is the best we can do when even the echo
// endpoints are unreachable.
type ipsbProvider struct {
	client geolib.HTTPClient
}

func (i ipsbProvider) Name() string {
	return NameIPSB
}

func (i ipsbProvider) Lookup(ctx context.Context, addr string) (geolib.Location, error) {
	result := geolib.Location{}

	requestURL := "https://api.ip.sb/geoip"
	if addr != "" {
		requestURL += "/" + addr
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return result, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	jsonResponse := ipsbResponse{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&jsonResponse); err != nil {
		return result, fmt.Errorf("cannot parse a response: %w", err)
	}

	if jsonResponse.City == "" && jsonResponse.Region == "" {
		return result, fmt.Errorf("incomplete response for %q", addr)
	}

	result.City = jsonResponse.City
	result.Region = jsonResponse.Region
	result.Country = jsonResponse.Country
	result.CountryCode = jsonResponse.CountryCode
	result.Latitude = jsonResponse.Latitude
	result.Longitude = jsonResponse.Longitude
	result.Timezone = jsonResponse.Timezone
	result.ISP = jsonResponse.ISP
	result.SourceAddr = addr

	if jsonResponse.IP != "" {
		result.SourceAddr = jsonResponse.IP
	}

	result.Succeeded = true

	return result, nil
}

func NewIPSB(client geolib.HTTPClient) geolib.IPProvider {
	return ipsbProvider{
		client: client,
	}
}
