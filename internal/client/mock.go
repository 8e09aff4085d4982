package client

import (
	"context"

	"bloomviewer/internal/fixtures"
	"bloomviewer/internal/geo"
	"bloomviewer/internal/models"
	"bloomviewer/internal/store"
	"bloomviewer/internal/validation"
)

// MockClient serves seed data from a private in-memory store. Each client
// starts from a fresh copy of the seed.
type MockClient struct {
	store    *store.MemoryStore
	overlays []models.MapOverlay
	species  []models.Species
}

func NewMockClient(seed *fixtures.Seed) *MockClient {
	return &MockClient{
		store:    store.NewMemoryStore(seed.Locations),
		overlays: seed.Overlays,
		species:  seed.Species,
	}
}

func (c *MockClient) ListLocations(ctx context.Context, speciesID *int64) ([]models.Location, error) {
	return c.store.List(ctx, speciesID)
}

func (c *MockClient) CreateLocation(ctx context.Context, p validation.Payload) (models.Location, error) {
	return c.store.Create(ctx, p)
}

func (c *MockClient) UpdateLocation(ctx context.Context, id int64, patch validation.Payload) (models.Location, error) {
	return c.store.Update(ctx, id, patch)
}

func (c *MockClient) DeleteLocation(ctx context.Context, id int64) (models.Location, error) {
	return c.store.Delete(ctx, id)
}

func (c *MockClient) ListOverlays(ctx context.Context) ([]models.OverlayStats, error) {
	locs, err := c.store.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return geo.BuildOverlayStats(c.overlays, locs), nil
}

func (c *MockClient) ListSpecies(context.Context) ([]models.Species, error) {
	out := make([]models.Species, len(c.species))
	copy(out, c.species)
	return out, nil
}
