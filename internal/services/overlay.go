package services

import (
	"context"
	"errors"
	"fmt"

	"bloomviewer/internal/geo"
	"bloomviewer/internal/models"
	"bloomviewer/internal/selection"
	"bloomviewer/internal/store"
)

var ErrOverlayNotFound = errors.New("overlay not found")

// OverlayFilter narrows the overlay list. Zero value means no filtering.
type OverlayFilter struct {
	IDs   []int
	Query string
}

// OverlayService derives overlay statistics from the current locations.
// Nothing is cached: every call recomputes against the store.
type OverlayService struct {
	overlays  []models.MapOverlay
	index     *geo.OverlayIndex
	locations store.LocationStore
}

func NewOverlayService(overlays []models.MapOverlay, locations store.LocationStore) (*OverlayService, error) {
	idx, err := geo.NewOverlayIndex(overlays)
	if err != nil {
		return nil, err
	}
	return &OverlayService{overlays: overlays, index: idx, locations: locations}, nil
}

// List returns overlays with their contained locations.
func (s *OverlayService) List(ctx context.Context, f OverlayFilter) ([]models.OverlayStats, error) {
	wanted := make(map[int]bool, len(f.IDs))
	for _, id := range f.IDs {
		wanted[id] = true
	}

	picked := make([]models.MapOverlay, 0, len(s.overlays))
	for _, o := range s.overlays {
		if len(wanted) > 0 && !wanted[o.ID] {
			continue
		}
		if !selection.MatchName(o.Name, f.Query) {
			continue
		}
		picked = append(picked, o)
	}
	return s.stats(ctx, picked)
}

// Get returns one overlay with its contained locations.
func (s *OverlayService) Get(ctx context.Context, id int) (models.OverlayStats, error) {
	for _, o := range s.overlays {
		if o.ID == id {
			stats, err := s.stats(ctx, []models.MapOverlay{o})
			if err != nil {
				return models.OverlayStats{}, err
			}
			return stats[0], nil
		}
	}
	return models.OverlayStats{}, fmt.Errorf("overlay %d: %w", id, ErrOverlayNotFound)
}

// At returns the overlays under a map point.
func (s *OverlayService) At(ctx context.Context, p models.Coordinates) ([]models.OverlayStats, error) {
	return s.stats(ctx, s.index.At(p))
}

// Summarize selects the given overlay ids and folds them into a summary.
// Unknown ids are ignored.
func (s *OverlayService) Summarize(ctx context.Context, ids []int) (models.SelectionSummary, error) {
	all, err := s.stats(ctx, s.overlays)
	if err != nil {
		return models.SelectionSummary{}, err
	}

	known := make(map[int]bool, len(all))
	for _, o := range all {
		known[o.ID] = true
	}

	sel := selection.New(all)
	for _, id := range ids {
		if known[id] && !sel.IsSelected(id) {
			sel.Toggle(id)
		}
	}
	return sel.Summary(), nil
}

func (s *OverlayService) stats(ctx context.Context, overlays []models.MapOverlay) ([]models.OverlayStats, error) {
	locs, err := s.locations.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return geo.BuildOverlayStats(overlays, locs), nil
}
