package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bloomviewer/internal/models"
)

func overlays() []models.OverlayStats {
	return []models.OverlayStats{
		{MapOverlay: models.MapOverlay{ID: 1, Name: "Antelope Valley Poppy Reserve"}, LocationCount: 2},
		{MapOverlay: models.MapOverlay{ID: 2, Name: "Walker Canyon"}, LocationCount: 1},
		{MapOverlay: models.MapOverlay{ID: 3, Name: "Ho Chi Minh City Center"}, LocationCount: 4},
	}
}

func TestToggle(t *testing.T) {
	s := New(overlays())

	s.Toggle(2)
	assert.True(t, s.IsSelected(2))
	assert.Equal(t, []int{2}, s.Selected())

	s.Toggle(2)
	assert.False(t, s.IsSelected(2))
	assert.Empty(t, s.Selected())
}

func TestSearch(t *testing.T) {
	s := New(overlays())

	s.Search("canyon")
	got := s.Candidates()
	assert.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)

	s.Search("  CITY ")
	got = s.Candidates()
	assert.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)

	s.Search("   ")
	assert.Len(t, s.Candidates(), 3)

	s.Search("tulip")
	assert.Empty(t, s.Candidates())
}

func TestToggleAll(t *testing.T) {
	s := New(overlays())

	s.ToggleAll()
	assert.Equal(t, []int{1, 2, 3}, s.Selected())

	s.ToggleAll()
	assert.Empty(t, s.Selected())
}

func TestToggleAll_UsesSearchResults(t *testing.T) {
	s := New(overlays())
	s.Toggle(1)

	s.Search("walker")
	s.ToggleAll()
	assert.Equal(t, []int{2}, s.Selected())

	// Not everything is selected, so the next call selects the candidates again.
	s.ToggleAll()
	assert.Equal(t, []int{2}, s.Selected())

	s.Search("")
	s.ToggleAll()
	assert.Equal(t, []int{1, 2, 3}, s.Selected())
}

func TestClear(t *testing.T) {
	s := New(overlays())
	s.Toggle(1)
	s.Toggle(3)
	s.Search("poppy")

	s.Clear()
	assert.Empty(t, s.Selected())
	assert.Empty(t, s.Query())
	assert.Len(t, s.Candidates(), 3)
}

func TestSummary(t *testing.T) {
	s := New(overlays())
	assert.Equal(t, 0, s.Summary().SelectedCount)
	assert.Equal(t, 0, s.Summary().LocationCount)

	s.Toggle(1)
	s.Toggle(3)
	sum := s.Summary()
	assert.Equal(t, []int{1, 3}, sum.SelectedIDs)
	assert.Equal(t, 2, sum.SelectedCount)
	assert.Equal(t, 6, sum.LocationCount)

	// Searching hides overlays but does not change what is selected.
	s.Search("walker")
	assert.Equal(t, 6, s.Summary().LocationCount)
}
