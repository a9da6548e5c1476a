package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const featuresCSV = `,state,season,episode,title,air_date,location,place(s) visited,rating,price,latitude,longitude
0,California,2,1,Real Deal,2008-01-07,"Los Angeles, CA",Barney's Beanery,4.0,$$,34.05,-118.24
1,Texas,14,3,Texas Two-Step,2012-05-04,"Austin, TX",Hoover's Cooking,NaN,,30.27,-97.74
2,California,29,9,Global Grub,2019-02-11,"San Diego, CA",Hodad's,4.5,$,32.72,-117.16
3,"Washington, D.C.",14,5,Capital Eats,2012-05-11,"Washington, DC",Ben's Chili Bowl,4.0,$,38.92,-77.03
`

const locationsCSV = `longitude,latitude,location,place(s) visited
-118.24,34.05,"Los Angeles, CA",Barney's Beanery
-97.74,30.27,"Austin, TX",Hoover's Cooking
`

// datasetArgs writes both fixtures to a temp dir and returns the flags
// pointing at them.
func datasetArgs(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	features := filepath.Join(dir, "features.csv")
	locations := filepath.Join(dir, "locations.csv")
	require.NoError(t, os.WriteFile(features, []byte(featuresCSV), 0o600))
	require.NoError(t, os.WriteFile(locations, []byte(locationsCSV), 0o600))
	return []string{"--features", features, "--locations", locations}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestFilter_selection(t *testing.T) {
	args := append([]string{"filter"}, datasetArgs(t)...)
	out, err := execute(t, append(args, "--region", "California", "--season", "29")...)

	require.NoError(t, err)
	assert.Equal(t,
		"state,season,episode,title,air_date,location,place(s) visited,rating,price,latitude,longitude\n"+
			"California,29,9,Global Grub,2019-02-11,\"San Diego, CA\",Hodad's,4.5,$,32.72,-117.16\n",
		out)
}

func TestFilter_emptySelectionKeepsEveryRow(t *testing.T) {
	out, err := execute(t, append([]string{"filter"}, datasetArgs(t)...)...)

	require.NoError(t, err)
	assert.Len(t, bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n")), 5)
}

func TestFilter_regionWithComma(t *testing.T) {
	args := append([]string{"filter"}, datasetArgs(t)...)
	out, err := execute(t, append(args, "--region", "Washington, D.C.")...)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], `"Washington, D.C.",14,5,Capital Eats`), lines[1])
}

func TestFilter_absentSeasonYieldsHeaderOnly(t *testing.T) {
	out, err := execute(t, append([]string{"filter", "--season", "0"}, datasetArgs(t)...)...)

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestFilter_missingDataset(t *testing.T) {
	_, err := execute(t, "filter", "--features", filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestRenderMap_document(t *testing.T) {
	out, err := execute(t, append([]string{"render-map"}, datasetArgs(t)...)...)

	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "vegaEmbed")
	assert.Contains(t, out, "Hoover's Cooking")
}

func TestRenderMap_jsonToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "map.json")
	_, err := execute(t, append([]string{"render-map", "--json", "-o", dest}, datasetArgs(t)...)...)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var chart map[string]any
	require.NoError(t, json.Unmarshal(data, &chart))
	assert.Contains(t, chart, "layer")
}

func TestSeed_requiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := execute(t, append([]string{"seed"}, datasetArgs(t)...)...)
	require.ErrorContains(t, err, "DATABASE_URL")
}
