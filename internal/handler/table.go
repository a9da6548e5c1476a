package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/flavortown/internal/domain"
)

// PaginationMeta describes the page returned by GET /api/table.
type PaginationMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TableResponse is the JSON body of GET /api/table.
type TableResponse struct {
	Columns    []string         `json:"columns"`
	Data       []map[string]any `json:"data"`
	Pagination PaginationMeta   `json:"pagination"`
}

// tableParams are the query parameters of GET /api/table.
type tableParams struct {
	Region []string
	Season []int
	Page   *int
	Limit  *int
	Format *string
}

func (p tableParams) selection() domain.Selection {
	return domain.Selection{Regions: p.Region, Seasons: p.Season}
}

// bindTableParams decodes the query string. Lists use the OpenAPI form
// style with explode, so ?region=Ohio&region=Texas yields two regions.
func bindTableParams(r *http.Request) (tableParams, error) {
	var p tableParams
	q := r.URL.Query()
	for _, b := range []struct {
		name string
		dest any
	}{
		{"region", &p.Region},
		{"season", &p.Season},
		{"page", &p.Page},
		{"limit", &p.Limit},
		{"format", &p.Format},
	} {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return tableParams{}, fmt.Errorf("%w: invalid %s parameter: %v", domain.ErrValidation, b.name, err)
		}
	}
	if p.Format != nil && *p.Format != "json" && *p.Format != "csv" {
		return tableParams{}, fmt.Errorf("%w: format must be json or csv", domain.ErrValidation)
	}
	return p, nil
}

// GetOptions handles GET /api/options.
func (s *Server) GetOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.Options())
}

// GetTable handles GET /api/table.
// Without a region (or season) parameter every region (or season) matches.
// Use ?format=csv to download every matching row; JSON responses are paged.
func (s *Server) GetTable(w http.ResponseWriter, r *http.Request) {
	p, err := bindTableParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if p.Format != nil && *p.Format == "csv" {
		var buf bytes.Buffer
		if err := s.dashboard.Export(&buf, p.selection()); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="flavortown.csv"`)
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck // client went away; nothing to report.
		buf.WriteTo(w)
		return
	}

	page := s.dashboard.Table(p.selection(), domain.NewPaginationParams(p.Page, p.Limit))
	w.Header().Set("X-Total-Count", strconv.Itoa(page.Total))
	writeJSON(w, http.StatusOK, TableResponse{
		Columns: page.Columns,
		Data:    records(page.Columns, page.Rows),
		Pagination: PaginationMeta{
			Page:  page.Pagination.Page,
			Limit: page.Pagination.Limit,
			Total: page.Total,
		},
	})
}

// records converts rows to column-keyed objects. The result is never nil
// so it encodes as [] rather than null.
func records(columns []string, rows []domain.FeatureRow) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Record(columns))
	}
	return out
}
