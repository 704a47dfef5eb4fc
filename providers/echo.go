package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/fieldtrack/geomatch/geolib"
)

// Public echo endpoints answer either with a plain-text address or with
// a tiny JSON document carrying an "ip" or "query" field. One parser
// handles both shapes, so every endpoint goes through the same provider
// type.
type echoProvider struct {
	name   string
	url    string
	client geolib.HTTPClient
}

func (e echoProvider) Name() string {
	return e.name
}

func (e echoProvider) Discover(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, nil)
	if err != nil {
		return "", fmt.Errorf("cannot build a request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	body, err := io.ReadAll(bufio.NewReader(io.LimitReader(resp.Body, 4096)))
	if err != nil {
		return "", fmt.Errorf("cannot read response body: %w", err)
	}

	addr := parseEchoBody(body)
	if addr == "" {
		return "", fmt.Errorf("no address in response: %s", strings.TrimSpace(string(body)))
	}

	return addr, nil
}

func parseEchoBody(body []byte) string {
	text := strings.TrimSpace(string(body))

	if strings.HasPrefix(text, "{") {
		jsonResponse := struct {
			IP    string `json:"ip"`
			Query string `json:"query"`
		}{}

		if err := json.Unmarshal(body, &jsonResponse); err != nil {
			return ""
		}

		if jsonResponse.IP != "" {
			return jsonResponse.IP
		}

		return jsonResponse.Query
	}

	if parsed := net.ParseIP(text); parsed != nil && parsed.To4() != nil {
		return text
	}

	return ""
}

func NewEcho(client geolib.HTTPClient, name, url string) geolib.EchoProvider {
	return echoProvider{
		name:   name,
		url:    url,
		client: client,
	}
}

// DefaultEchoProviders returns the stock echo chain in priority order.
func DefaultEchoProviders(client geolib.HTTPClient) []geolib.EchoProvider {
	return []geolib.EchoProvider{
		NewEcho(client, "ipify", "https://api.ipify.org?format=json"),
		NewEcho(client, "ipsb_echo", "https://api.ip.sb/ip"),
		NewEcho(client, "ifconfig", "https://ifconfig.me/ip"),
		NewEcho(client, "icanhazip", "https://icanhazip.com"),
		NewEcho(client, "ipapi_echo", "http://ip-api.com/json/?fields=query"),
	}
}
