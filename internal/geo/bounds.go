// Package geo holds the spatial rules for associating bloom locations with map overlays.
package geo

import "bloomviewer/internal/models"

// Contains reports whether the point lies inside the box, edges included.
// A box with min > max on either axis contains nothing.
func Contains(p models.Coordinates, box models.Bounds) bool {
	lon, lat := p.Lon(), p.Lat()
	return lon >= box.MinLon && lon <= box.MaxLon &&
		lat >= box.MinLat && lat <= box.MaxLat
}

// Valid reports whether the box spans a non-negative extent on both axes.
func Valid(box models.Bounds) bool {
	return box.MinLon <= box.MaxLon && box.MinLat <= box.MaxLat
}
