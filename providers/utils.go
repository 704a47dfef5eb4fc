package providers

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

func flushResponse(resp io.ReadCloser) {
	io.Copy(io.Discard, resp) // nolint: errcheck
	resp.Close()
}

// flexString tolerates upstreams which serialize a field either as a
// scalar string or as a (possibly empty) list of strings. One of the IP
// locators does both depending on the address.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var scalar string

	if err := json.Unmarshal(data, &scalar); err == nil {
		*f = flexString(scalar)

		return nil
	}

	var list []string

	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) > 0 {
			*f = flexString(list[0])
		} else {
			*f = ""
		}

		return nil
	}

	// Anything else (numbers, bools) is coerced through its raw text.
	*f = flexString(strings.Trim(string(data), `"`))

	return nil
}

func (f flexString) String() string {
	return string(f)
}

func parseCoordinate(value string) *float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil
	}

	return &parsed
}

func float64Ptr(value float64) *float64 {
	return &value
}
