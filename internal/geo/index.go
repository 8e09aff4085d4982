package geo

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"

	"bloomviewer/internal/models"
)

const (
	dimensions  = 2
	minChildren = 2
	maxChildren = 8

	// pointTolerance widens a query point into a tiny rectangle; degenerate
	// overlay boxes are widened the same way so rtreego accepts them.
	pointTolerance = 1e-9
)

// overlayItem wraps an overlay for rtree indexing
type overlayItem struct {
	overlay models.MapOverlay
	order   int
	rect    *rtreego.Rect
}

func (oi *overlayItem) Bounds() *rtreego.Rect {
	return oi.rect
}

// OverlayIndex answers "which overlays are under this point" without scanning
// every overlay. Candidates from the tree are re-checked with Contains.
// The index is immutable once built and safe for concurrent readers.
type OverlayIndex struct {
	tree  *rtreego.Rtree
	count int
}

// NewOverlayIndex indexes the given overlays. Overlays with malformed bounds
// are skipped since they can never contain a point.
func NewOverlayIndex(overlays []models.MapOverlay) (*OverlayIndex, error) {
	idx := &OverlayIndex{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
	for i, o := range overlays {
		if !Valid(o.Bounds) {
			continue
		}
		rect, err := rectFor(o.Bounds)
		if err != nil {
			return nil, fmt.Errorf("index overlay %d: %w", o.ID, err)
		}
		idx.tree.Insert(&overlayItem{overlay: o, order: i, rect: rect})
		idx.count++
	}
	return idx, nil
}

// At returns the overlays whose bounds contain the point, in the order the
// overlays were given to NewOverlayIndex.
func (idx *OverlayIndex) At(p models.Coordinates) []models.MapOverlay {
	query := rtreego.Point{p.Lon(), p.Lat()}.ToRect(pointTolerance)
	results := idx.tree.SearchIntersect(query)

	hits := make([]*overlayItem, 0, len(results))
	for _, r := range results {
		item, ok := r.(*overlayItem)
		if !ok {
			continue
		}
		if Contains(p, item.overlay.Bounds) {
			hits = append(hits, item)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].order < hits[j].order })

	out := make([]models.MapOverlay, len(hits))
	for i, h := range hits {
		out[i] = h.overlay
	}
	return out
}

// Size returns the number of indexed overlays.
func (idx *OverlayIndex) Size() int {
	return idx.count
}

func rectFor(b models.Bounds) (*rtreego.Rect, error) {
	width := b.MaxLon - b.MinLon
	height := b.MaxLat - b.MinLat
	if width == 0 {
		width = pointTolerance
	}
	if height == 0 {
		height = pointTolerance
	}
	return rtreego.NewRect(rtreego.Point{b.MinLon, b.MinLat}, []float64{width, height})
}
