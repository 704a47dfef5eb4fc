package geolib

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// MatchThreshold is the minimal score a venue must reach to be retained.
const MatchThreshold = 10

const earthRadiusKm = 6371.0

// Administrative suffixes stripped before fuzzy comparison, so that
// "北京市" and "北京" compare equal. City-level and province-level names
// carry different suffix sets.
var (
	citySuffixes   = []string{"市", "县", "区", "自治州", "地区", "盟"}
	regionSuffixes = []string{"省", "市", "自治区", "特别行政区", "维吾尔", "回族", "壮族"}
)

// NormalizeCity lowercases a city name and strips common administrative
// suffixes.
func NormalizeCity(name string) string {
	return stripSuffixes(strings.ToLower(name), citySuffixes)
}

// NormalizeRegion lowercases a province-level name and strips common
// administrative suffixes and ethnic qualifiers.
func NormalizeRegion(name string) string {
	return stripSuffixes(strings.ToLower(name), regionSuffixes)
}

func stripSuffixes(name string, suffixes []string) string {
	for _, suffix := range suffixes {
		name = strings.ReplaceAll(name, suffix, "")
	}

	return name
}

// HaversineKm computes the great-circle distance between two points in
// kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(deltaLon/2), 2)

	return earthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// ScoreMatch scores how well a venue matches the client's resolved
// location. Pure function, no I/O.
//
// With a successful geocode the score is the sum of a city tier, a
// region tier and a distance tier. Without one it degrades to comparing
// the client city against the venue's raw region hint and to searching
// the venue names for the client's normalized city and region. A client
// country that does not look like the home country is treated as a
// VPN/proxy signal and the accumulated score is cut to 70%.
func ScoreMatch(client Location, venue VenueLocation, query VenueQuery) MatchResult {
	rv := MatchResult{VenueID: query.ID}

	clientCity := strings.ToLower(strings.TrimSpace(client.City))
	clientRegion := strings.ToLower(strings.TrimSpace(client.Region))
	clientCityNorm := NormalizeCity(clientCity)
	clientRegionNorm := NormalizeRegion(clientRegion)

	if venue.Geocode.OK() {
		venueCity := strings.ToLower(strings.TrimSpace(venue.Geocode.City))
		venueRegion := strings.ToLower(strings.TrimSpace(venue.Geocode.Region))

		rv.Score += tierScore(clientCity, venueCity,
			clientCityNorm, NormalizeCity(venueCity), cityTierWeights)
		rv.Score += tierScore(clientRegion, venueRegion,
			clientRegionNorm, NormalizeRegion(venueRegion), regionTierWeights)

		if client.HasCoordinates() && venue.Geocode.HasCoordinates() {
			distance := HaversineKm(*client.Latitude, *client.Longitude,
				*venue.Geocode.Latitude, *venue.Geocode.Longitude)
			rv.DistanceKm = &distance
			rv.Score += distanceScore(distance)
		}
	} else {
		rv.Score += hintScore(clientCity, clientCityNorm, query.CityHint)
		rv.Score += nameSearchScore(clientCityNorm, clientRegionNorm, query)
	}

	if isForeignCountry(client.Country) {
		rv.Score = int(float64(rv.Score) * 0.7)
	}

	return rv
}

type tierWeights struct {
	exact         int
	normExact     int
	substring     int
	normSubstring int
}

var (
	cityTierWeights   = tierWeights{exact: 50, normExact: 45, substring: 40, normSubstring: 35}
	regionTierWeights = tierWeights{exact: 30, normExact: 25, substring: 20, normSubstring: 15}
)

// tierScore awards points for the best text match between a client and a
// venue place name. Checked in order, first match wins, no stacking.
func tierScore(client, venue, clientNorm, venueNorm string, weights tierWeights) int {
	if client == "" || venue == "" {
		return 0
	}

	switch {
	case client == venue:
		return weights.exact
	case clientNorm != "" && venueNorm != "" && clientNorm == venueNorm:
		return weights.normExact
	case strings.Contains(venue, client) || strings.Contains(client, venue):
		return weights.substring
	case clientNorm != "" && venueNorm != "" &&
		(strings.Contains(venueNorm, clientNorm) || strings.Contains(clientNorm, venueNorm)):
		return weights.normSubstring
	}

	return 0
}

func distanceScore(distanceKm float64) int {
	switch {
	case distanceKm <= 10:
		return 30
	case distanceKm <= 50:
		return 20
	case distanceKm <= 100:
		return 10
	case distanceKm <= 200:
		return 5
	}

	return 0
}

// hintScore compares the client city against the venue's raw region hint
// when no geocode is available. The raw substring check deliberately
// outranks the normalized exact one: this preserves the historical tier
// order of the matching behavior.
func hintScore(clientCity, clientCityNorm, cityHint string) int {
	hint := strings.ToLower(strings.TrimSpace(cityHint))

	if clientCity == "" || hint == "" {
		return 0
	}

	hintNorm := NormalizeCity(hint)

	switch {
	case clientCity == hint:
		return 30
	case strings.Contains(hint, clientCity) || strings.Contains(clientCity, hint):
		return 25
	case clientCityNorm != "" && hintNorm != "" && clientCityNorm == hintNorm:
		return 28
	case clientCityNorm != "" && hintNorm != "" &&
		(strings.Contains(hintNorm, clientCityNorm) || strings.Contains(clientCityNorm, hintNorm)):
		return 22
	}

	return 0
}

// nameSearchScore handles venues whose name itself encodes the city,
// e.g. "北京协和医院". Single-rune fragments are too ambiguous to count.
func nameSearchScore(clientCityNorm, clientRegionNorm string, query VenueQuery) int {
	searchText := strings.ToLower(query.DisplayName + " " + query.HospitalName)
	score := 0

	if utf8.RuneCountInString(clientCityNorm) >= 2 && strings.Contains(searchText, clientCityNorm) {
		score += 15
	}

	if utf8.RuneCountInString(clientRegionNorm) >= 2 && strings.Contains(searchText, clientRegionNorm) {
		score += 10
	}

	return score
}

func isForeignCountry(country string) bool {
	lowered := strings.ToLower(country)

	return lowered != "" &&
		!strings.Contains(lowered, "china") &&
		!strings.Contains(lowered, "中国")
}

// SortMatches orders results by score descending, breaking ties by
// ascending distance. Results without a known distance sort after every
// result with one. The sort is stable so equal candidates keep their
// input order.
func SortMatches(results []MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}

		return matchDistance(results[i]) < matchDistance(results[j])
	})
}

func matchDistance(result MatchResult) float64 {
	if result.DistanceKm == nil {
		return math.Inf(1)
	}

	return *result.DistanceKm
}
