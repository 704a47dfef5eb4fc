package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fieldtrack/geomatch/geolib"
)

const NameAmapIP = "amap_ip"

type amapIPResponse struct {
	Status    string     `json:"status"`
	Info      string     `json:"info"`
	Province  flexString `json:"province"`
	City      flexString `json:"city"`
	Adcode    flexString `json:"adcode"`
	Rectangle flexString `json:"rectangle"`
}

// amapIPProvider is the keyed high-precision locator sitting first in
// the lookup chain. It only covers domestic addresses; anything it
// cannot place comes back with empty province and city, which is treated
// as a failure so the chain can advance.
type amapIPProvider struct {
	apiKey string
	client geolib.HTTPClient
}

func (a amapIPProvider) Name() string {
	return NameAmapIP
}

func (a amapIPProvider) Lookup(ctx context.Context, addr string) (geolib.Location, error) {
	result := geolib.Location{}

	if addr == "" {
		return result, ErrAddressIsRequired
	}

	getQuery := url.Values{}
	getQuery.Set("ip", addr)
	getQuery.Set("key", a.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://restapi.amap.com/v3/ip?"+getQuery.Encode(), nil)
	if err != nil {
		return result, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	jsonResponse := amapIPResponse{}
	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&jsonResponse); err != nil {
		return result, fmt.Errorf("cannot parse a response: %w", err)
	}

	if jsonResponse.Status != "1" || jsonResponse.Info != "OK" {
		return result, fmt.Errorf("failed response: %s", jsonResponse.Info)
	}

	province := jsonResponse.Province.String()
	city := jsonResponse.City.String()

	if province == "" && city == "" {
		return result, fmt.Errorf("cannot locate address %s", addr)
	}

	result.City = city
	result.Region = province
	result.Country = "中国"
	result.CountryCode = "CN"
	result.SourceAddr = addr
	result.Succeeded = true

	return result, nil
}

func NewAmapIP(client geolib.HTTPClient, apiKey string) (geolib.IPProvider, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyIsRequired
	}

	return amapIPProvider{
		apiKey: apiKey,
		client: client,
	}, nil
}
