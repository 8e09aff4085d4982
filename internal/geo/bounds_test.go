package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bloomviewer/internal/models"
)

var antelopeValley = models.Bounds{MinLon: -118.44, MaxLon: -118.38, MinLat: 34.764, MaxLat: 34.88}

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		point models.Coordinates
		want  bool
	}{
		{"interior", models.Coordinates{-118.41, 34.80}, true},
		{"min corner", models.Coordinates{-118.44, 34.764}, true},
		{"max corner", models.Coordinates{-118.38, 34.88}, true},
		{"min lon edge", models.Coordinates{-118.44, 34.8}, true},
		{"max lat edge", models.Coordinates{-118.4, 34.88}, true},
		{"west of box", models.Coordinates{-118.4401, 34.8}, false},
		{"north of box", models.Coordinates{-118.4, 34.8801}, false},
		{"other hemisphere", models.Coordinates{106.7, 10.78}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.point, antelopeValley))
		})
	}
}

func TestContains_MalformedBoxMatchesNothing(t *testing.T) {
	inverted := models.Bounds{MinLon: 10, MaxLon: 0, MinLat: 0, MaxLat: 10}

	assert.False(t, Contains(models.Coordinates{5, 5}, inverted))
	assert.False(t, Contains(models.Coordinates{0, 0}, inverted))
	assert.False(t, Valid(inverted))
}

func TestContains_DegenerateBox(t *testing.T) {
	point := models.Bounds{MinLon: 1, MaxLon: 1, MinLat: 2, MaxLat: 2}

	assert.True(t, Contains(models.Coordinates{1, 2}, point))
	assert.False(t, Contains(models.Coordinates{1, 2.0001}, point))
	assert.True(t, Valid(point))
}
