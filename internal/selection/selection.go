// Package selection models the overlay filter panel: a searchable list of
// overlays with a multi-select over their ids.
package selection

import (
	"sort"
	"strings"

	"bloomviewer/internal/models"
)

// Selection holds the selected overlay ids and the current search query.
// It is not safe for concurrent use.
type Selection struct {
	overlays []models.OverlayStats
	selected map[int]struct{}
	query    string
}

// New returns an empty selection over overlays.
func New(overlays []models.OverlayStats) *Selection {
	return &Selection{
		overlays: overlays,
		selected: make(map[int]struct{}),
	}
}

// Toggle adds id to the selection, or removes it if already selected.
func (s *Selection) Toggle(id int) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// ToggleAll clears the selection when every overlay is selected; otherwise it
// selects exactly the overlays matching the current search.
func (s *Selection) ToggleAll() {
	if len(s.selected) == len(s.overlays) {
		s.selected = make(map[int]struct{})
		return
	}
	s.selected = make(map[int]struct{})
	for _, o := range s.Candidates() {
		s.selected[o.ID] = struct{}{}
	}
}

// Search sets the name filter. A blank query shows every overlay.
func (s *Selection) Search(query string) {
	s.query = query
}

// Clear empties the selection and the search query.
func (s *Selection) Clear() {
	s.selected = make(map[int]struct{})
	s.query = ""
}

// Query returns the current search text.
func (s *Selection) Query() string {
	return s.query
}

// Candidates returns the overlays whose name matches the query, in input order.
func (s *Selection) Candidates() []models.OverlayStats {
	out := make([]models.OverlayStats, 0, len(s.overlays))
	for _, o := range s.overlays {
		if MatchName(o.Name, s.query) {
			out = append(out, o)
		}
	}
	return out
}

// IsSelected reports whether id is selected.
func (s *Selection) IsSelected(id int) bool {
	_, ok := s.selected[id]
	return ok
}

// Selected returns the selected ids in ascending order.
func (s *Selection) Selected() []int {
	ids := make([]int, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Summary folds the selected overlays into a count and a location total.
func (s *Selection) Summary() models.SelectionSummary {
	sum := models.SelectionSummary{SelectedIDs: s.Selected()}
	sum.SelectedCount = len(sum.SelectedIDs)
	for _, o := range s.overlays {
		if s.IsSelected(o.ID) {
			sum.LocationCount += o.LocationCount
		}
	}
	return sum
}

// MatchName is a case-insensitive substring match. Blank queries match everything.
func MatchName(name, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(q))
}
