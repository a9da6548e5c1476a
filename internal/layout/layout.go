// Package layout composes the dashboard page: a header, the embedded map,
// the region and season dropdowns beside the data table, and a footer of
// credits. Templates and the page script are embedded in the binary.
package layout

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"slices"
	"strconv"

	"github.com/pkordes/flavortown/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Static returns the page script and stylesheet, rooted at the static
// directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("layout: static assets missing: " + err.Error())
	}
	return sub
}

// Credit is one footer entry.
type Credit struct {
	Heading string
	Text    string
	URL     string
}

// Chrome is the part of the page that never changes between requests.
type Chrome struct {
	Title       string
	Heading     string
	Intro       []string
	LogoURL     string
	Credits     []Credit
	FrameWidth  int
	FrameHeight int
	PageSize    int
}

// Page is everything needed to render the dashboard for one session.
type Page struct {
	Chrome

	SessionID     string
	MapDocument   string
	RegionOptions []domain.Option[string]
	SeasonOptions []domain.Option[int]
	Selection     domain.Selection
	Columns       []string
	Rows          []domain.FeatureRow
}

// choice is a dropdown entry ready for the template.
type choice struct {
	Label    string
	Value    string
	Selected bool
}

type pageView struct {
	Page
	Regions []choice
	Seasons []choice
	Cells   [][]string
}

// Render writes the dashboard HTML for p to w.
func Render(w io.Writer, p Page) error {
	view := pageView{
		Page:    p,
		Regions: make([]choice, 0, len(p.RegionOptions)),
		Seasons: make([]choice, 0, len(p.SeasonOptions)),
		Cells:   make([][]string, 0, len(p.Rows)),
	}
	for _, o := range p.RegionOptions {
		view.Regions = append(view.Regions, choice{
			Label:    o.Label,
			Value:    o.Value,
			Selected: slices.Contains(p.Selection.Regions, o.Value),
		})
	}
	for _, o := range p.SeasonOptions {
		view.Seasons = append(view.Seasons, choice{
			Label:    o.Label,
			Value:    strconv.Itoa(o.Value),
			Selected: slices.Contains(p.Selection.Seasons, o.Value),
		})
	}
	for _, r := range p.Rows {
		view.Cells = append(view.Cells, r.Cells(p.Columns))
	}

	if err := pageTmpl.ExecuteTemplate(w, "page", view); err != nil {
		return fmt.Errorf("layout.Render: %w", err)
	}
	return nil
}
