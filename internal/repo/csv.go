package repo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkordes/flavortown/internal/domain"
)

// headerAliases maps header spellings seen in exported datasets to the
// canonical column names.
var headerAliases = map[string]string{
	"places visited":   domain.ColPlacesVisited,
	"places_visited":   domain.ColPlacesVisited,
	"place(s)_visited": domain.ColPlacesVisited,
	"airdate":          domain.ColAirDate,
	"air date":         domain.ColAirDate,
	"lat":              domain.ColLatitude,
	"lon":              domain.ColLongitude,
	"lng":              domain.ColLongitude,
}

// CanonicalColumns is the feature column order used when a dataset has no
// header of its own (for example when read back from Postgres).
var CanonicalColumns = []string{
	domain.ColState, domain.ColSeason, domain.ColEpisode, domain.ColTitle, domain.ColAirDate,
	domain.ColLocation, domain.ColPlacesVisited, domain.ColRating, domain.ColPrice,
	domain.ColLatitude, domain.ColLongitude,
}

// header is a parsed CSV header: canonical column names and their indices.
// Index columns written by dataframe exports (blank or "unnamed: 0") are
// dropped.
type header struct {
	columns []string
	index   map[string]int
}

func parseHeader(record []string) header {
	h := header{index: make(map[string]int, len(record))}
	for i, raw := range record {
		name := normalizeColumn(raw)
		if name == "" || strings.HasPrefix(name, "unnamed:") {
			continue
		}
		if _, dup := h.index[name]; dup {
			continue
		}
		h.index[name] = i
		h.columns = append(h.columns, name)
	}
	return h
}

func normalizeColumn(raw string) string {
	name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")))
	if canonical, ok := headerAliases[name]; ok {
		return canonical
	}
	return name
}

func (h header) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := h.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns: %s", domain.ErrDataset, strings.Join(missing, ", "))
	}
	return nil
}

// field returns the trimmed value of col in record, or "" if the dataset
// has no such column.
func (h header) field(record []string, col string) string {
	i, ok := h.index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ReadFeatures parses a feature dataset. The state and season columns are
// required; every other known column is optional.
func ReadFeatures(r io.Reader) (domain.FeatureTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.FeatureTable{}, fmt.Errorf("repo.ReadFeatures: %w: empty file", domain.ErrDataset)
		}
		return domain.FeatureTable{}, fmt.Errorf("repo.ReadFeatures: header: %w", err)
	}
	h := parseHeader(first)
	if err := h.require(domain.ColState, domain.ColSeason); err != nil {
		return domain.FeatureTable{}, fmt.Errorf("repo.ReadFeatures: %w", err)
	}

	known := make(map[string]struct{}, len(CanonicalColumns))
	for _, c := range CanonicalColumns {
		known[c] = struct{}{}
	}

	table := domain.FeatureTable{Columns: h.columns}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.FeatureTable{}, fmt.Errorf("repo.ReadFeatures: %w", err)
		}
		line, _ := cr.FieldPos(0)

		row, err := featureFromRecord(h, known, record)
		if err != nil {
			return domain.FeatureTable{}, fmt.Errorf("repo.ReadFeatures: line %d: %w", line, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func featureFromRecord(h header, known map[string]struct{}, record []string) (domain.FeatureRow, error) {
	row := domain.FeatureRow{
		State:         h.field(record, domain.ColState),
		Title:         h.field(record, domain.ColTitle),
		AirDate:       h.field(record, domain.ColAirDate),
		Location:      h.field(record, domain.ColLocation),
		PlacesVisited: h.field(record, domain.ColPlacesVisited),
		Price:         h.field(record, domain.ColPrice),
	}
	if isMissing(row.Price) {
		row.Price = ""
	}

	var err error
	if row.Season, err = parseInt(h.field(record, domain.ColSeason)); err != nil {
		return domain.FeatureRow{}, columnError(domain.ColSeason, err)
	}
	if v := h.field(record, domain.ColEpisode); !isMissing(v) {
		if row.Episode, err = parseInt(v); err != nil {
			return domain.FeatureRow{}, columnError(domain.ColEpisode, err)
		}
	}
	for _, f := range []struct {
		col string
		dst **float64
	}{
		{domain.ColRating, &row.Rating},
		{domain.ColLatitude, &row.Latitude},
		{domain.ColLongitude, &row.Longitude},
	} {
		if *f.dst, err = parseOptionalFloat(h.field(record, f.col)); err != nil {
			return domain.FeatureRow{}, columnError(f.col, err)
		}
	}

	for _, col := range h.columns {
		if _, ok := known[col]; ok {
			continue
		}
		if row.Extra == nil {
			row.Extra = make(map[string]string)
		}
		row.Extra[col] = h.field(record, col)
	}
	return row, nil
}

// ReadLocations parses a location dataset. All four columns are required.
func ReadLocations(r io.Reader) ([]domain.LocationPoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("repo.ReadLocations: %w: empty file", domain.ErrDataset)
		}
		return nil, fmt.Errorf("repo.ReadLocations: header: %w", err)
	}
	h := parseHeader(first)
	if err := h.require(domain.ColLongitude, domain.ColLatitude, domain.ColLocation, domain.ColPlacesVisited); err != nil {
		return nil, fmt.Errorf("repo.ReadLocations: %w", err)
	}

	var points []domain.LocationPoint
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("repo.ReadLocations: %w", err)
		}
		line, _ := cr.FieldPos(0)

		p := domain.LocationPoint{
			Location:      h.field(record, domain.ColLocation),
			PlacesVisited: h.field(record, domain.ColPlacesVisited),
		}
		if p.Longitude, err = parseFloat(h.field(record, domain.ColLongitude)); err != nil {
			return nil, fmt.Errorf("repo.ReadLocations: line %d: %w", line, columnError(domain.ColLongitude, err))
		}
		if p.Latitude, err = parseFloat(h.field(record, domain.ColLatitude)); err != nil {
			return nil, fmt.Errorf("repo.ReadLocations: line %d: %w", line, columnError(domain.ColLatitude, err))
		}
		points = append(points, p)
	}
	return points, nil
}

// WriteFeatures writes rows as CSV with a header row of columns.
// Missing optional values are written as empty fields.
func WriteFeatures(w io.Writer, columns []string, rows []domain.FeatureRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("repo.WriteFeatures: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Cells(columns)); err != nil {
			return fmt.Errorf("repo.WriteFeatures: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("repo.WriteFeatures: %w", err)
	}
	return nil
}

func columnError(col string, err error) error {
	return fmt.Errorf("%w: column %q: %v", domain.ErrDataset, col, err)
}

// isMissing reports whether v is one of the spellings dataframe exports use
// for a missing value.
func isMissing(v string) bool {
	switch strings.ToLower(v) {
	case "", "nan", "na", "n/a", "null", "none":
		return true
	}
	return false
}

// parseInt accepts integral floats ("14.0") because dataframe exports write
// integer columns that way once any value in them is missing.
func parseInt(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", v)
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("integer out of range: %q", v)
	}
	return int(f), nil
}

func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("not a number: %q", v)
	}
	return f, nil
}

func parseOptionalFloat(v string) (*float64, error) {
	if isMissing(v) {
		return nil, nil
	}
	f, err := parseFloat(v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
