// Package store owns the mutable collection of bloom locations.
package store

import (
	"context"
	"errors"

	"bloomviewer/internal/models"
	"bloomviewer/internal/validation"
)

// ErrNotFound is returned when no location has the requested id.
var ErrNotFound = errors.New("location not found")

// LocationStore is an ordered collection of locations. Writes validate their
// input and ids are never reused, even after the highest id is deleted.
type LocationStore interface {
	Create(ctx context.Context, p validation.Payload) (models.Location, error)
	List(ctx context.Context, speciesID *int64) ([]models.Location, error)
	Get(ctx context.Context, id int64) (models.Location, error)
	Update(ctx context.Context, id int64, patch validation.Payload) (models.Location, error)
	Delete(ctx context.Context, id int64) (models.Location, error)
	Count(ctx context.Context) (int, error)
}

func highestID(locs []models.Location) int64 {
	var maxID int64
	for _, l := range locs {
		if l.ID > maxID {
			maxID = l.ID
		}
	}
	return maxID
}
