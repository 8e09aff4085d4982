package models

// Bounds is an axis-aligned rectangle in degree space.
type Bounds struct {
	MinLon float64 `json:"minLon" yaml:"minLon"`
	MaxLon float64 `json:"maxLon" yaml:"maxLon"`
	MinLat float64 `json:"minLat" yaml:"minLat"`
	MaxLat float64 `json:"maxLat" yaml:"maxLat"`
}

// MapOverlay is a named region drawn over the map. StartDate and EndDate are
// display-only and play no part in containment.
type MapOverlay struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Address   string `json:"address" yaml:"address"`
	Bounds    Bounds `json:"bounds" yaml:"bounds"`
	StartDate string `json:"startDate,omitempty" yaml:"startDate"`
	EndDate   string `json:"endDate,omitempty" yaml:"endDate"`
}

// OverlayStats is an overlay together with the locations it contains.
// It is derived on every read and never stored.
type OverlayStats struct {
	MapOverlay
	LocationCount int        `json:"locationCount"`
	Locations     []Location `json:"locations"`
}

// SelectionSummary folds a set of selected overlays.
type SelectionSummary struct {
	SelectedIDs   []int `json:"selectedIds"`
	SelectedCount int   `json:"selectedCount"`
	LocationCount int   `json:"locationCount"`
}
