// Package domain contains the core data types for the Flavortown dashboard.
// This package has no dependencies on the storage or HTTP layers and is
// imported by every other internal package.
package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Canonical column names of the feature dataset. CSV headers are matched
// against these after lowercasing and trimming.
const (
	ColState         = "state"
	ColSeason        = "season"
	ColEpisode       = "episode"
	ColTitle         = "title"
	ColAirDate       = "air_date"
	ColLocation      = "location"
	ColPlacesVisited = "place(s) visited"
	ColRating        = "rating"
	ColPrice         = "price"
	ColLatitude      = "latitude"
	ColLongitude     = "longitude"
)

// FeatureRow is one episode/restaurant entry of the feature dataset.
// Rows are immutable after load; filters return references to the same
// values and never construct new rows.
type FeatureRow struct {
	State         string
	Season        int
	Episode       int
	Title         string
	AirDate       string
	Location      string
	PlacesVisited string
	Rating        *float64 // nil when the dataset has no rating for the entry
	Price         string   // empty when unknown
	Latitude      *float64
	Longitude     *float64

	// Extra holds columns the loader does not model explicitly, keyed by
	// their header name. Nil when the dataset has no such columns.
	Extra map[string]string
}

// Value returns the value of the named column as it should appear in a
// table record: numbers stay numbers, missing optional values are nil.
func (r FeatureRow) Value(column string) any {
	switch column {
	case ColState:
		return r.State
	case ColSeason:
		return r.Season
	case ColEpisode:
		return r.Episode
	case ColTitle:
		return r.Title
	case ColAirDate:
		return r.AirDate
	case ColLocation:
		return r.Location
	case ColPlacesVisited:
		return r.PlacesVisited
	case ColRating:
		return optionalFloat(r.Rating)
	case ColPrice:
		if r.Price == "" {
			return nil
		}
		return r.Price
	case ColLatitude:
		return optionalFloat(r.Latitude)
	case ColLongitude:
		return optionalFloat(r.Longitude)
	}
	if v, ok := r.Extra[column]; ok {
		return v
	}
	return nil
}

// Record returns the row as a column → value map restricted to columns.
func (r FeatureRow) Record(columns []string) map[string]any {
	out := make(map[string]any, len(columns))
	for _, c := range columns {
		out[c] = r.Value(c)
	}
	return out
}

// Cells returns the row's values for columns formatted as text, with
// missing values as empty strings.
func (r FeatureRow) Cells(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = FormatValue(r.Value(c))
	}
	return out
}

// FormatValue renders a value returned by FeatureRow.Value as text.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func optionalFloat(f *float64) any {
	if f == nil || math.IsNaN(*f) {
		return nil
	}
	return *f
}

// FeatureTable is the universe table: the dataset header in file order
// plus every row. It is built once at startup and shared read-only.
type FeatureTable struct {
	Columns []string
	Rows    []FeatureRow
}

// VisibleColumns returns Columns minus any name in hidden, preserving order.
func (t FeatureTable) VisibleColumns(hidden []string) []string {
	skip := make(map[string]struct{}, len(hidden))
	for _, h := range hidden {
		skip[h] = struct{}{}
	}
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if _, ok := skip[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
