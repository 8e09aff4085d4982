package models

// Coordinates is a [longitude, latitude] pair in geographic degrees.
type Coordinates [2]float64

func (c Coordinates) Lon() float64 { return c[0] }
func (c Coordinates) Lat() float64 { return c[1] }

// BloomingPeriod holds the three ISO calendar dates (YYYY-MM-DD) of a flowering season.
// The strings are stored exactly as submitted.
type BloomingPeriod struct {
	Start string `json:"start" yaml:"start"`
	Peak  string `json:"peak" yaml:"peak"`
	End   string `json:"end" yaml:"end"`
}

// Location is a place where a species blooms.
type Location struct {
	ID             int64          `json:"id" yaml:"id"`
	SpeciesID      int64          `json:"speciesId" yaml:"speciesId"`
	LocationName   string         `json:"locationName" yaml:"locationName"`
	Coordinates    Coordinates    `json:"coordinates" yaml:"coordinates"`
	BloomingPeriod BloomingPeriod `json:"bloomingPeriod" yaml:"bloomingPeriod"`
}

// BloomStatus describes where a date falls relative to a blooming period.
type BloomStatus string

const (
	BloomUpcoming BloomStatus = "upcoming"
	BloomBlooming BloomStatus = "blooming"
	BloomPeak     BloomStatus = "peak"
	BloomEnded    BloomStatus = "ended"
)

// LocationBloom pairs a location with its status on a given day.
type LocationBloom struct {
	Location
	Status BloomStatus `json:"status"`
}
