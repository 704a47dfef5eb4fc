package geolib

// Location is a normalized result of resolving a network address or a
// free-text query to a place. It is immutable once produced: providers
// and resolvers return it by value and nobody mutates it afterwards.
//
// Succeeded=false implies that all text fields are empty and both
// coordinates are nil. Callers must branch on Succeeded before reading
// anything else.
type Location struct {
	City        string   `json:"city"`
	Region      string   `json:"region"`
	Country     string   `json:"country"`
	CountryCode string   `json:"country_code"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`
	ISP         string   `json:"isp,omitempty"`
	SourceAddr  string   `json:"source_addr"`
	Succeeded   bool     `json:"succeeded"`
}

// OK reports whether the location is usable: it succeeded and carries at
// least one non-empty place field. A provider that returns an "empty
// success" is treated the same as a failed one.
func (l Location) OK() bool {
	return l.Succeeded && (l.City != "" || l.Region != "" || l.Country != "")
}

func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// VenueQuery identifies one candidate venue to geocode. It comes from an
// external store and is read-only input.
type VenueQuery struct {
	ID           string `json:"id"`
	DisplayName  string `json:"name"`
	HospitalName string `json:"hospital_name,omitempty"`
	CityHint     string `json:"city_hint,omitempty"`
}

// Keyword returns the free-text identity used for geocoding: the hospital
// name when present, the display name otherwise.
func (q VenueQuery) Keyword() string {
	if q.HospitalName != "" {
		return q.HospitalName
	}

	return q.DisplayName
}

// GeocodeResult is what a forward-geocoding provider returns for a single
// free-text query.
type GeocodeResult struct {
	Location

	FormattedAddress string `json:"formatted_address,omitempty"`
	District         string `json:"district,omitempty"`
}

// VenueLocation pairs a venue id with its geocode outcome. A failed
// geocode is represented by a zero GeocodeResult (Succeeded=false), not
// by an absent map entry, so callers can tell "failed" from "filtered".
type VenueLocation struct {
	VenueID string        `json:"venue_id"`
	Geocode GeocodeResult `json:"geocode"`
}

// MatchResult is the scored outcome for one venue. DistanceKm is nil when
// either side lacks coordinates.
type MatchResult struct {
	VenueID    string   `json:"venue_id"`
	Score      int      `json:"score"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}
