package services

import (
	"errors"
	"fmt"

	"bloomviewer/internal/models"
)

var ErrSpeciesNotFound = errors.New("species not found")

// SpeciesService serves the read-only species catalog.
type SpeciesService struct {
	species []models.Species
}

func NewSpeciesService(species []models.Species) *SpeciesService {
	return &SpeciesService{species: species}
}

func (s *SpeciesService) List() []models.Species {
	out := make([]models.Species, len(s.species))
	copy(out, s.species)
	return out
}

func (s *SpeciesService) Get(id int64) (models.Species, error) {
	for _, sp := range s.species {
		if sp.ID == id {
			return sp, nil
		}
	}
	return models.Species{}, fmt.Errorf("species %d: %w", id, ErrSpeciesNotFound)
}
