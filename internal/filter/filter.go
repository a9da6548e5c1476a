// Package filter implements the table filter behind the region and season
// dropdowns. Every function here is pure: inputs are never mutated and
// outputs only ever contain rows taken from the input.
package filter

import (
	"sort"
	"strconv"

	"github.com/pkordes/flavortown/internal/domain"
)

// Apply returns the rows whose state is in regions and whose season is in
// seasons, in their original order.
//
// An empty regions slice matches every region present in rows; the same
// holds for seasons. Values that appear in no row simply match nothing.
func Apply(rows []domain.FeatureRow, regions []string, seasons []int) []domain.FeatureRow {
	regionSet := toSet(regions)
	seasonSet := toSet(seasons)

	out := make([]domain.FeatureRow, 0, len(rows))
	for _, r := range rows {
		if !matches(regionSet, r.State) || !matches(seasonSet, r.Season) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ApplySelection is Apply with the values taken from sel.
func ApplySelection(rows []domain.FeatureRow, sel domain.Selection) []domain.FeatureRow {
	return Apply(rows, sel.Regions, sel.Seasons)
}

// Effective widens sel by the "empty means all" rule: an empty axis is
// replaced with every distinct value of that axis in rows.
func Effective(rows []domain.FeatureRow, sel domain.Selection) domain.Selection {
	out := sel.Clone()
	if len(out.Regions) == 0 {
		out.Regions = Regions(rows)
	}
	if len(out.Seasons) == 0 {
		out.Seasons = Seasons(rows)
	}
	return out
}

// Regions returns the distinct states in rows in order of first appearance.
func Regions(rows []domain.FeatureRow) []string {
	return distinct(rows, func(r domain.FeatureRow) string { return r.State })
}

// Seasons returns the distinct seasons in rows in order of first appearance.
func Seasons(rows []domain.FeatureRow) []int {
	return distinct(rows, func(r domain.FeatureRow) int { return r.Season })
}

// RegionOptions returns one dropdown option per distinct state, sorted
// alphabetically by label.
func RegionOptions(rows []domain.FeatureRow) []domain.Option[string] {
	regions := Regions(rows)
	out := make([]domain.Option[string], 0, len(regions))
	for _, r := range regions {
		out = append(out, domain.Option[string]{Label: r, Value: r})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// SeasonOptions returns one dropdown option per distinct season in order of
// first appearance in rows.
func SeasonOptions(rows []domain.FeatureRow) []domain.Option[int] {
	seasons := Seasons(rows)
	out := make([]domain.Option[int], 0, len(seasons))
	for _, s := range seasons {
		out = append(out, domain.Option[int]{Label: strconv.Itoa(s), Value: s})
	}
	return out
}

// toSet returns nil for an empty input; matches treats nil as "everything".
func toSet[T comparable](values []T) map[T]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func matches[T comparable](set map[T]struct{}, v T) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

func distinct[T comparable](rows []domain.FeatureRow, key func(domain.FeatureRow) T) []T {
	seen := make(map[T]struct{})
	var out []T
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
