package domain

import "slices"

// Selection is the pair of dropdown values that drives the table filter.
// An empty slice on either axis means "no constraint on that axis".
type Selection struct {
	Regions []string `json:"regions"`
	Seasons []int    `json:"seasons"`
}

// DefaultSelection returns the selection the dashboard opens with.
func DefaultSelection() Selection {
	return Selection{
		Regions: []string{"California", "Texas", "Florida"},
		Seasons: []int{2, 14, 29},
	}
}

// Clone returns a copy that shares no backing arrays with s.
func (s Selection) Clone() Selection {
	return Selection{
		Regions: slices.Clone(s.Regions),
		Seasons: slices.Clone(s.Seasons),
	}
}

// Equal reports whether both selections hold the same values in the same
// order. Dropdown widgets report values in the order they were picked, so
// a reordering counts as a change.
func (s Selection) Equal(other Selection) bool {
	return slices.Equal(s.Regions, other.Regions) && slices.Equal(s.Seasons, other.Seasons)
}

// Option is one entry of a dropdown menu.
type Option[T comparable] struct {
	Label string `json:"label"`
	Value T      `json:"value"`
}
