// Package validation checks and normalizes incoming location payloads.
package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"bloomviewer/internal/models"
)

// DateLayout is the calendar-date format of blooming period dates.
const DateLayout = "2006-01-02"

// Payload is an untyped location submission as decoded from a request body.
// A nil field means the field was absent.
type Payload struct {
	SpeciesID      any `json:"speciesId,omitempty"`
	LocationName   any `json:"locationName,omitempty"`
	Coordinates    any `json:"coordinates,omitempty"`
	BloomingPeriod any `json:"bloomingPeriod,omitempty"`
}

// Validate checks p and returns the normalized location (without an id).
//
// Checks run in a fixed order and stop at the first failure: missing fields,
// coordinate shape, blooming period presence, then date order.
func Validate(p Payload) (models.Location, error) {
	if !truthy(p.SpeciesID) || !truthy(p.LocationName) || !truthy(p.Coordinates) || !truthy(p.BloomingPeriod) {
		return models.Location{}, newError(MissingField, msgMissingField)
	}
	name, ok := p.LocationName.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return models.Location{}, newError(MissingField, msgMissingField)
	}

	coords, ok := coordinates(p.Coordinates)
	if !ok {
		return models.Location{}, newError(InvalidCoordinates, msgInvalidCoordinates)
	}

	period, ok := bloomingPeriod(p.BloomingPeriod)
	if !ok {
		return models.Location{}, newError(InvalidBloomingPeriod, msgInvalidBloomingPeriod)
	}
	if err := CheckDateOrder(period); err != nil {
		return models.Location{}, err
	}

	speciesID, ok := positiveInt(p.SpeciesID)
	if !ok {
		return models.Location{}, newError(InvalidSpeciesID, msgInvalidSpeciesID)
	}

	return models.Location{
		SpeciesID:      speciesID,
		LocationName:   strings.TrimSpace(name),
		Coordinates:    coords,
		BloomingPeriod: period,
	}, nil
}

// CheckDateOrder requires start <= peak <= end. Equal dates are allowed.
func CheckDateOrder(bp models.BloomingPeriod) error {
	start, errStart := time.Parse(DateLayout, bp.Start)
	peak, errPeak := time.Parse(DateLayout, bp.Peak)
	end, errEnd := time.Parse(DateLayout, bp.End)
	if errStart != nil || errPeak != nil || errEnd != nil {
		return newError(InvalidBloomingPeriod, msgInvalidBloomingPeriod)
	}
	if peak.Before(start) || end.Before(peak) {
		return newError(InvalidDateOrder, msgInvalidDateOrder)
	}
	return nil
}

// Merge shallow-merges patch over an existing location. Fields absent from
// the patch keep their current value; present fields replace it wholesale.
func Merge(existing models.Location, patch Payload) Payload {
	merged := Payload{
		SpeciesID:      existing.SpeciesID,
		LocationName:   existing.LocationName,
		Coordinates:    []float64{existing.Coordinates.Lon(), existing.Coordinates.Lat()},
		BloomingPeriod: existing.BloomingPeriod,
	}
	if patch.SpeciesID != nil {
		merged.SpeciesID = patch.SpeciesID
	}
	if patch.LocationName != nil {
		merged.LocationName = patch.LocationName
	}
	if patch.Coordinates != nil {
		merged.Coordinates = patch.Coordinates
	}
	if patch.BloomingPeriod != nil {
		merged.BloomingPeriod = patch.BloomingPeriod
	}
	return merged
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case int:
		return x != 0
	case int64:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	default:
		return true
	}
}

func coordinates(v any) (models.Coordinates, bool) {
	var items []any
	switch x := v.(type) {
	case []any:
		items = x
	case []float64:
		for _, f := range x {
			items = append(items, f)
		}
	case models.Coordinates:
		items = []any{x[0], x[1]}
	default:
		return models.Coordinates{}, false
	}
	if len(items) != 2 {
		return models.Coordinates{}, false
	}

	var out models.Coordinates
	for i, item := range items {
		f, ok := toFloat(item)
		if !ok || math.IsInf(f, 0) || math.IsNaN(f) {
			return models.Coordinates{}, false
		}
		out[i] = f
	}
	return out, true
}

func bloomingPeriod(v any) (models.BloomingPeriod, bool) {
	var bp models.BloomingPeriod
	switch x := v.(type) {
	case models.BloomingPeriod:
		bp = x
	case *models.BloomingPeriod:
		if x == nil {
			return bp, false
		}
		bp = *x
	case map[string]any:
		var ok bool
		if bp.Start, ok = dateString(x["start"]); !ok {
			return bp, false
		}
		if bp.Peak, ok = dateString(x["peak"]); !ok {
			return bp, false
		}
		if bp.End, ok = dateString(x["end"]); !ok {
			return bp, false
		}
	default:
		return bp, false
	}
	if bp.Start == "" || bp.Peak == "" || bp.End == "" {
		return bp, false
	}
	return bp, true
}

func dateString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// positiveInt truncates numeric input toward zero the way integer parsing of
// user input usually does ("2", 2, 2.0 and 2.7 all give 2).
func positiveInt(v any) (int64, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case string:
		s := strings.TrimSpace(x)
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, false
			}
			i = int64(f)
		}
		n = i
	default:
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		n = int64(f)
	}
	return n, n > 0
}
