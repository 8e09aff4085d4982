package geo

import "bloomviewer/internal/models"

// BuildOverlayStats attaches to each overlay the locations its bounds contain.
// Overlays keep their input order and each overlay's locations keep the input
// location order.
func BuildOverlayStats(overlays []models.MapOverlay, locations []models.Location) []models.OverlayStats {
	out := make([]models.OverlayStats, 0, len(overlays))
	for _, o := range overlays {
		contained := make([]models.Location, 0)
		for _, loc := range locations {
			if Contains(loc.Coordinates, o.Bounds) {
				contained = append(contained, loc)
			}
		}
		out = append(out, models.OverlayStats{
			MapOverlay:    o,
			LocationCount: len(contained),
			Locations:     contained,
		})
	}
	return out
}
