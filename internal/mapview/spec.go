package mapview

import "github.com/pkordes/flavortown/internal/domain"

// The types below are the subset of the Vega-Lite grammar the map uses.

type chart struct {
	Schema string  `json:"$schema"`
	Layer  []layer `json:"layer"`
}

type layer struct {
	Data       any        `json:"data"`
	Mark       mark       `json:"mark"`
	Encoding   *encoding  `json:"encoding,omitempty"`
	Projection projection `json:"projection"`
	Width      int        `json:"width,omitempty"`
	Height     int        `json:"height,omitempty"`
}

type urlData struct {
	URL    string     `json:"url"`
	Format dataFormat `json:"format"`
}

type dataFormat struct {
	Type    string `json:"type"`
	Feature string `json:"feature"`
}

// inlineData always emits "values", even when empty, so a map without
// locations is still a valid chart.
type inlineData struct {
	Values []domain.LocationPoint `json:"values"`
}

type mark struct {
	Type   string `json:"type"`
	Fill   string `json:"fill,omitempty"`
	Stroke string `json:"stroke,omitempty"`
	Color  string `json:"color,omitempty"`
	Size   int    `json:"size,omitempty"`
}

type encoding struct {
	Longitude fieldDef   `json:"longitude"`
	Latitude  fieldDef   `json:"latitude"`
	Tooltip   []fieldDef `json:"tooltip"`
}

type fieldDef struct {
	Field string `json:"field"`
	Type  string `json:"type"`
}

type projection struct {
	Type string `json:"type"`
}

// buildSpec layers the marker circles over the state shapes. Both layers
// share one projection so the markers line up with the background.
func buildSpec(points []domain.LocationPoint, opts Options) chart {
	values := make([]domain.LocationPoint, len(points))
	copy(values, points)
	proj := projection{Type: opts.Projection}

	background := layer{
		Data: urlData{
			URL:    opts.TopoJSONURL,
			Format: dataFormat{Type: "topojson", Feature: opts.TopoJSONFeature},
		},
		Mark:       mark{Type: "geoshape", Fill: opts.BackgroundFill, Stroke: opts.BackgroundStroke},
		Projection: proj,
		Width:      opts.Width,
		Height:     opts.Height,
	}

	markers := layer{
		Data: inlineData{Values: values},
		Mark: mark{Type: "circle", Color: opts.MarkerColor, Size: opts.MarkerSize},
		Encoding: &encoding{
			Longitude: fieldDef{Field: domain.ColLongitude, Type: "quantitative"},
			Latitude:  fieldDef{Field: domain.ColLatitude, Type: "quantitative"},
			Tooltip: []fieldDef{
				{Field: domain.ColLocation, Type: "nominal"},
				{Field: domain.ColPlacesVisited, Type: "nominal"},
			},
		},
		Projection: proj,
	}

	return chart{
		Schema: schemaURL,
		Layer:  []layer{background, markers},
	}
}
