// Package service contains the read-side logic of the dashboard.
// Datasets are loaded once through a repo.DatasetRepo and held immutable;
// every request filters the same in-memory universe table.
package service

import (
	"context"
	"fmt"
	"io"

	"github.com/pkordes/flavortown/internal/domain"
	"github.com/pkordes/flavortown/internal/filter"
	"github.com/pkordes/flavortown/internal/mapview"
	"github.com/pkordes/flavortown/internal/repo"
)

// Options are the dropdown menus derived from the universe table.
type Options struct {
	Regions []domain.Option[string] `json:"regions"`
	Seasons []domain.Option[int]    `json:"seasons"`
}

// TablePage is one page of filtered table rows.
type TablePage struct {
	Columns    []string
	Rows       []domain.FeatureRow
	Total      int
	Pagination domain.PaginationParams
}

// DashboardService serves filtered views of the datasets loaded at startup.
// It is safe for concurrent use because nothing in it changes after
// construction.
type DashboardService struct {
	table   domain.FeatureTable
	points  []domain.LocationPoint
	columns []string
	options Options
	chart   *mapview.Map
}

// LoadDashboard reads both datasets from r and builds a DashboardService.
// Any error here means the dashboard cannot be served.
func LoadDashboard(ctx context.Context, r repo.DatasetRepo, hiddenColumns []string, mapOpts mapview.Options) (*DashboardService, error) {
	table, err := r.Features(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LoadDashboard: %w", err)
	}
	points, err := r.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LoadDashboard: %w", err)
	}
	return NewDashboardService(table, points, hiddenColumns, mapOpts)
}

// NewDashboardService renders the map and derives the dropdown options.
// The caller must not modify table or points afterwards.
func NewDashboardService(table domain.FeatureTable, points []domain.LocationPoint, hiddenColumns []string, mapOpts mapview.Options) (*DashboardService, error) {
	chart, err := mapview.Render(points, mapOpts)
	if err != nil {
		return nil, fmt.Errorf("service.NewDashboardService: %w", err)
	}
	return &DashboardService{
		table:   table,
		points:  points,
		columns: table.VisibleColumns(hiddenColumns),
		options: Options{
			Regions: filter.RegionOptions(table.Rows),
			Seasons: filter.SeasonOptions(table.Rows),
		},
		chart: chart,
	}, nil
}

// Universe returns every feature row in file order.
func (s *DashboardService) Universe() []domain.FeatureRow { return s.table.Rows }

// Locations returns the map markers.
func (s *DashboardService) Locations() []domain.LocationPoint { return s.points }

// Columns returns the table columns shown to users.
func (s *DashboardService) Columns() []string { return s.columns }

// Options returns the region and season dropdown options.
func (s *DashboardService) Options() Options { return s.options }

// Map returns the map rendered at startup.
func (s *DashboardService) Map() *mapview.Map { return s.chart }

// Filter returns every row matching sel.
func (s *DashboardService) Filter(sel domain.Selection) []domain.FeatureRow {
	return filter.ApplySelection(s.table.Rows, sel)
}

// Table returns one page of the rows matching sel.
func (s *DashboardService) Table(sel domain.Selection, page domain.PaginationParams) TablePage {
	return s.Paginate(s.Filter(sel), page)
}

// Paginate slices rows that were already filtered.
func (s *DashboardService) Paginate(rows []domain.FeatureRow, page domain.PaginationParams) TablePage {
	start, end := page.Window(len(rows))
	return TablePage{
		Columns:    s.columns,
		Rows:       rows[start:end],
		Total:      len(rows),
		Pagination: page,
	}
}

// Export writes every row matching sel to w as CSV in the visible columns.
func (s *DashboardService) Export(w io.Writer, sel domain.Selection) error {
	if err := repo.WriteFeatures(w, s.columns, s.Filter(sel)); err != nil {
		return fmt.Errorf("service.DashboardService.Export: %w", err)
	}
	return nil
}
