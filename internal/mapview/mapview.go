// Package mapview renders the map of visited locations: a background of US
// state shapes with one circle per location, as a layered Vega-Lite chart
// wrapped in a standalone HTML document. The document is rendered once at
// startup and embedded in the page through a sandboxed iframe.
package mapview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/pkordes/flavortown/internal/domain"
)

// Script sources loaded by the rendered document.
const (
	VegaScript      = "https://cdn.jsdelivr.net/npm/vega@5"
	VegaLiteScript  = "https://cdn.jsdelivr.net/npm/vega-lite@4.17.0"
	VegaEmbedScript = "https://cdn.jsdelivr.net/npm/vega-embed@6"

	schemaURL = "https://vega.github.io/schema/vega-lite/v4.17.0.json"
)

// Options controls the look of the map.
type Options struct {
	Width            int    `yaml:"width" json:"width"`
	Height           int    `yaml:"height" json:"height"`
	MarkerSize       int    `yaml:"marker_size" json:"marker_size"`
	MarkerColor      string `yaml:"marker_color" json:"marker_color"`
	BackgroundFill   string `yaml:"background_fill" json:"background_fill"`
	BackgroundStroke string `yaml:"background_stroke" json:"background_stroke"`
	Projection       string `yaml:"projection" json:"projection"`
	TopoJSONURL      string `yaml:"topojson_url" json:"topojson_url"`
	TopoJSONFeature  string `yaml:"topojson_feature" json:"topojson_feature"`
}

// DefaultOptions returns a 1000×500 albersUsa map with small red markers.
func DefaultOptions() Options {
	return Options{
		Width:            1000,
		Height:           500,
		MarkerSize:       15,
		MarkerColor:      "red",
		BackgroundFill:   "lightgray",
		BackgroundStroke: "white",
		Projection:       "albersUsa",
		TopoJSONURL:      "https://cdn.jsdelivr.net/npm/vega-datasets@v1.29.0/data/us-10m.json",
		TopoJSONFeature:  "states",
	}
}

// Map is a rendered map. It is immutable.
type Map struct {
	spec     []byte
	document string
}

// Spec returns the Vega-Lite JSON of the chart.
func (m *Map) Spec() []byte { return m.spec }

// Document returns the standalone HTML document that draws the chart.
func (m *Map) Document() string { return m.document }

// Render builds the chart for points. It fails only if the chart cannot be
// encoded.
func Render(points []domain.LocationPoint, opts Options) (*Map, error) {
	spec, err := json.Marshal(buildSpec(points, opts))
	if err != nil {
		return nil, fmt.Errorf("mapview.Render: encode spec: %w", err)
	}

	var buf bytes.Buffer
	err = documentTmpl.Execute(&buf, documentData{
		VegaScript:      VegaScript,
		VegaLiteScript:  VegaLiteScript,
		VegaEmbedScript: VegaEmbedScript,
		Spec:            template.JS(spec),
	})
	if err != nil {
		return nil, fmt.Errorf("mapview.Render: execute template: %w", err)
	}
	return &Map{spec: spec, document: buf.String()}, nil
}

type documentData struct {
	VegaScript      string
	VegaLiteScript  string
	VegaEmbedScript string
	Spec            template.JS
}

var documentTmpl = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>.error { color: red; }</style>
  <script type="text/javascript" src="{{.VegaScript}}"></script>
  <script type="text/javascript" src="{{.VegaLiteScript}}"></script>
  <script type="text/javascript" src="{{.VegaEmbedScript}}"></script>
</head>
<body>
  <div id="vis"></div>
  <script type="text/javascript">
    (function(spec) {
      var el = document.getElementById("vis");
      vegaEmbed(el, spec, {mode: "vega-lite", renderer: "svg"}).catch(function(err) {
        el.innerHTML = '<div class="error"></div>';
        el.firstChild.textContent = "JavaScript Error: " + err.message;
        console.error(err);
      });
    })({{.Spec}});
  </script>
</body>
</html>
`))
