// Package fixtures loads the reference data and seed locations the service
// starts with.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bloomviewer/internal/geo"
	"bloomviewer/internal/models"
	"bloomviewer/internal/validation"
)

//go:embed seed.yaml
var embeddedSeed []byte

// Seed is the startup data set.
type Seed struct {
	Species   []models.Species    `yaml:"species"`
	Overlays  []models.MapOverlay `yaml:"overlays"`
	Locations []models.Location   `yaml:"locations"`
}

// Default returns the embedded seed.
func Default() (*Seed, error) {
	return Parse(embeddedSeed)
}

// Load reads a seed file, or the embedded seed when path is empty.
func Load(path string) (*Seed, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML seed document.
func Parse(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Seed) check() error {
	seen := make(map[int64]bool, len(s.Locations))
	for _, l := range s.Locations {
		if l.ID <= 0 {
			return fmt.Errorf("seed location %q: id must be positive", l.LocationName)
		}
		if seen[l.ID] {
			return fmt.Errorf("seed location %d: duplicate id", l.ID)
		}
		seen[l.ID] = true
		if l.SpeciesID <= 0 || l.LocationName == "" {
			return fmt.Errorf("seed location %d: speciesId and locationName are required", l.ID)
		}
		if err := validation.CheckDateOrder(l.BloomingPeriod); err != nil {
			return fmt.Errorf("seed location %d: %w", l.ID, err)
		}
	}

	overlayIDs := make(map[int]bool, len(s.Overlays))
	for _, o := range s.Overlays {
		if overlayIDs[o.ID] {
			return fmt.Errorf("seed overlay %d: duplicate id", o.ID)
		}
		overlayIDs[o.ID] = true
		if !geo.Valid(o.Bounds) {
			return fmt.Errorf("seed overlay %d: bounds min exceeds max", o.ID)
		}
	}
	return nil
}
