package store

import (
	"context"
	"fmt"
	"sync"

	"bloomviewer/internal/models"
	"bloomviewer/internal/validation"
)

// MemoryStore keeps locations in process memory. A restart discards every
// change and starts again from the seed.
type MemoryStore struct {
	mu        sync.RWMutex
	locations []models.Location
	lastID    int64
}

// NewMemoryStore returns a store holding a copy of seed. Seed records keep
// their ids; new ids continue after the highest seed id.
func NewMemoryStore(seed []models.Location) *MemoryStore {
	locs := make([]models.Location, len(seed))
	copy(locs, seed)
	return &MemoryStore{locations: locs, lastID: highestID(locs)}
}

func (s *MemoryStore) Create(_ context.Context, p validation.Payload) (models.Location, error) {
	loc, err := validation.Validate(p)
	if err != nil {
		return models.Location{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	loc.ID = s.lastID
	s.locations = append(s.locations, loc)
	return loc, nil
}

func (s *MemoryStore) List(_ context.Context, speciesID *int64) ([]models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Location, 0, len(s.locations))
	for _, l := range s.locations {
		if speciesID != nil && l.SpeciesID != *speciesID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id int64) (models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Location{}, fmt.Errorf("get location %d: %w", id, ErrNotFound)
	}
	return s.locations[i], nil
}

// Update merges patch into the location and re-validates the result. An
// invalid merge leaves the stored record untouched.
func (s *MemoryStore) Update(_ context.Context, id int64, patch validation.Payload) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Location{}, fmt.Errorf("update location %d: %w", id, ErrNotFound)
	}

	merged, err := validation.Validate(validation.Merge(s.locations[i], patch))
	if err != nil {
		return models.Location{}, err
	}
	merged.ID = id
	s.locations[i] = merged
	return merged, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Location{}, fmt.Errorf("delete location %d: %w", id, ErrNotFound)
	}
	removed := s.locations[i]
	s.locations = append(s.locations[:i], s.locations[i+1:]...)
	return removed, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.locations), nil
}

// caller holds s.mu
func (s *MemoryStore) indexOf(id int64) int {
	for i, l := range s.locations {
		if l.ID == id {
			return i
		}
	}
	return -1
}
