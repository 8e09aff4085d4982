// Package client is the service layer a front end or CLI uses to talk to the
// bloom API, either over HTTP or against local mock data.
package client

import (
	"context"

	"bloomviewer/internal/models"
	"bloomviewer/internal/validation"
)

// LocationAPI is implemented by HTTPClient and MockClient.
type LocationAPI interface {
	ListLocations(ctx context.Context, speciesID *int64) ([]models.Location, error)
	CreateLocation(ctx context.Context, p validation.Payload) (models.Location, error)
	UpdateLocation(ctx context.Context, id int64, patch validation.Payload) (models.Location, error)
	DeleteLocation(ctx context.Context, id int64) (models.Location, error)
	ListOverlays(ctx context.Context) ([]models.OverlayStats, error)
	ListSpecies(ctx context.Context) ([]models.Species, error)
}

var (
	_ LocationAPI = (*HTTPClient)(nil)
	_ LocationAPI = (*MockClient)(nil)
)
