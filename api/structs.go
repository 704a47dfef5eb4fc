package api

import (
	"github.com/fieldtrack/geomatch/geolib"
)

type selfResponseStruct struct {
	Result geolib.Location `json:"result"`
}

type matchRequestStruct struct {
	Addr   string              `json:"addr,omitempty"`
	Venues []geolib.VenueQuery `json:"venues,omitempty"`
}

type matchResponseStruct struct {
	Results []matchResponseItemStruct `json:"results"`
}

type matchResponseItemStruct struct {
	VenueID    string   `json:"venue_id"`
	Score      int      `json:"score"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

func (m *matchResponseStruct) Build(results []geolib.MatchResult) {
	m.Results = make([]matchResponseItemStruct, 0, len(results))

	for _, result := range results {
		m.Results = append(m.Results, matchResponseItemStruct{
			VenueID:    result.VenueID,
			Score:      result.Score,
			DistanceKm: result.DistanceKm,
		})
	}
}

type infoResponseStruct struct {
	Results []*geolib.UsageStats `json:"results"`
}

type errorResponseStruct struct {
	Error string `json:"error"`
}
