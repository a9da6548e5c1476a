package handler_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/flavortown/internal/domain"
	"github.com/pkordes/flavortown/internal/handler"
	"github.com/pkordes/flavortown/internal/layout"
	"github.com/pkordes/flavortown/internal/mapview"
	"github.com/pkordes/flavortown/internal/service"
)

// mockDashboard is a test double for handler.DashboardServicer.
// Set only the method fields your test needs.
type mockDashboard struct {
	options func() service.Options
	columns func() []string
	table   func(sel domain.Selection, page domain.PaginationParams) service.TablePage
	export  func(w io.Writer, sel domain.Selection) error
	chart   *mapview.Map
}

func (m *mockDashboard) Options() service.Options {
	return m.options()
}
func (m *mockDashboard) Columns() []string {
	return m.columns()
}
func (m *mockDashboard) Table(sel domain.Selection, page domain.PaginationParams) service.TablePage {
	return m.table(sel, page)
}
func (m *mockDashboard) Export(w io.Writer, sel domain.Selection) error {
	return m.export(w, sel)
}
func (m *mockDashboard) Map() *mapview.Map {
	return m.chart
}

// mockSessions is a test double for handler.SessionServicer.
type mockSessions struct {
	create func() service.SessionView
	get    func(id uuid.UUID) (service.SessionView, error)
	sel    func(id uuid.UUID, sel domain.Selection) (service.SessionView, error)
}

func (m *mockSessions) Create() service.SessionView {
	return m.create()
}
func (m *mockSessions) Get(id uuid.UUID) (service.SessionView, error) {
	return m.get(id)
}
func (m *mockSessions) Select(id uuid.UUID, sel domain.Selection) (service.SessionView, error) {
	return m.sel(id, sel)
}

// compile-time checks: the mocks and the real services satisfy the interfaces.
var (
	_ handler.DashboardServicer = (*mockDashboard)(nil)
	_ handler.SessionServicer   = (*mockSessions)(nil)
	_ handler.DashboardServicer = (*service.DashboardService)(nil)
	_ handler.SessionServicer   = (*service.SessionService)(nil)
)

// ---- helpers ---------------------------------------------------------------

var testColumns = []string{domain.ColState, domain.ColSeason, domain.ColTitle, domain.ColRating}

func ptr[T any](v T) *T { return &v }

func rowsFixture() []domain.FeatureRow {
	return []domain.FeatureRow{
		{State: "California", Season: 2, Title: "Surf and Turf", Rating: ptr(4.5)},
		{State: "Texas", Season: 14, Title: "Smoke Show"},
	}
}

func chartFixture(t *testing.T) *mapview.Map {
	t.Helper()
	m, err := mapview.Render([]domain.LocationPoint{
		{Longitude: -118.24, Latitude: 34.05, Location: "Los Angeles, California", PlacesVisited: "Surf Shack"},
	}, mapview.DefaultOptions())
	require.NoError(t, err)
	return m
}

// newDashboard returns a mockDashboard whose methods all succeed, so tests
// only override what they assert on.
func newDashboard(t *testing.T) *mockDashboard {
	return &mockDashboard{
		options: func() service.Options {
			return service.Options{
				Regions: []domain.Option[string]{{Label: "California", Value: "California"}, {Label: "Texas", Value: "Texas"}},
				Seasons: []domain.Option[int]{{Label: "2", Value: 2}, {Label: "14", Value: 14}},
			}
		},
		columns: func() []string { return testColumns },
		table: func(_ domain.Selection, page domain.PaginationParams) service.TablePage {
			rows := rowsFixture()
			return service.TablePage{Columns: testColumns, Rows: rows, Total: len(rows), Pagination: page}
		},
		export: func(w io.Writer, _ domain.Selection) error {
			_, err := io.WriteString(w, "state,season\nCalifornia,2\n")
			return err
		},
		chart: chartFixture(t),
	}
}

func newHTTPHandler(dash handler.DashboardServicer, sessions handler.SessionServicer) http.Handler {
	chrome := layout.Chrome{Title: "Flavortown", Heading: "A Visual Guide to Flavortown", FrameWidth: 1100, FrameHeight: 600}
	return handler.NewServer(dash, sessions, chrome, nil).Routes()
}
