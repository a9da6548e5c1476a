package handler

import (
	"bytes"
	"net/http"

	"github.com/pkordes/flavortown/api"
	"github.com/pkordes/flavortown/internal/domain"
	"github.com/pkordes/flavortown/internal/layout"
)

// GetPage handles GET /. Every page load opens its own session. The table
// starts on the first page of the unfiltered data; the page script then
// applies the session's selection.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	view := s.sessions.Create()
	first := s.dashboard.Table(domain.Selection{}, domain.PaginationParams{Page: 1, Limit: s.chrome.PageSize})
	opts := s.dashboard.Options()

	var buf bytes.Buffer
	err := layout.Render(&buf, layout.Page{
		Chrome:        s.chrome,
		SessionID:     view.ID.String(),
		MapDocument:   s.dashboard.Map().Document(),
		RegionOptions: opts.Regions,
		SeasonOptions: opts.Seasons,
		Selection:     view.Snapshot.Selection,
		Columns:       first.Columns,
		Rows:          first.Rows,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client went away; nothing to report.
	buf.WriteTo(w)
}

// GetMap handles GET /map, the standalone map document.
func (s *Server) GetMap(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client went away; nothing to report.
	w.Write([]byte(s.dashboard.Map().Document()))
}

// GetMapSpec handles GET /api/map.json, the Vega-Lite chart behind the map.
func (s *Server) GetMapSpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client went away; nothing to report.
	w.Write(s.dashboard.Map().Spec())
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client went away; nothing to report.
	w.Write(api.OpenAPI)
}

const docsPage = `<!DOCTYPE html>
<html>
<head>
  <title>Flavortown API</title>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
  <script id="api-reference" data-url="/openapi.yaml"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>
`

// GetDocs handles GET /docs, an API reference rendered from /openapi.yaml.
func (s *Server) GetDocs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client went away; nothing to report.
	w.Write([]byte(docsPage))
}
