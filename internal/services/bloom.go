package services

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"bloomviewer/internal/models"
	"bloomviewer/internal/store"
	"bloomviewer/internal/validation"
)

// BloomService answers "what is flowering on a given day".
type BloomService struct {
	locations store.LocationStore
	clock     clockwork.Clock
}

// NewBloomService uses the real clock when clock is nil.
func NewBloomService(locations store.LocationStore, clock clockwork.Clock) *BloomService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &BloomService{locations: locations, clock: clock}
}

// Today is the current calendar date as seen by the service clock.
func (s *BloomService) Today() string {
	return s.clock.Now().Format(validation.DateLayout)
}

// InBloom returns the locations blooming (or peaking) on day, a YYYY-MM-DD
// date. An empty day means today.
func (s *BloomService) InBloom(ctx context.Context, day string) ([]models.LocationBloom, error) {
	if day == "" {
		day = s.Today()
	}
	d, err := time.Parse(validation.DateLayout, day)
	if err != nil {
		return nil, err
	}

	locs, err := s.locations.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]models.LocationBloom, 0)
	for _, l := range locs {
		st, ok := Status(l.BloomingPeriod, d)
		if !ok || (st != models.BloomBlooming && st != models.BloomPeak) {
			continue
		}
		out = append(out, models.LocationBloom{Location: l, Status: st})
	}
	return out, nil
}

// Status places day relative to bp. ok is false when bp has unparseable dates.
func Status(bp models.BloomingPeriod, day time.Time) (models.BloomStatus, bool) {
	start, err1 := time.Parse(validation.DateLayout, bp.Start)
	peak, err2 := time.Parse(validation.DateLayout, bp.Peak)
	end, err3 := time.Parse(validation.DateLayout, bp.End)
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}

	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case day.Before(start):
		return models.BloomUpcoming, true
	case day.After(end):
		return models.BloomEnded, true
	case day.Equal(peak):
		return models.BloomPeak, true
	default:
		return models.BloomBlooming, true
	}
}
