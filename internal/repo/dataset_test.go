package repo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/flavortown/internal/repo"
)

// writeDatasets writes the fixture CSVs to a temp dir and returns their paths.
func writeDatasets(t *testing.T) (features, locations string) {
	t.Helper()
	dir := t.TempDir()
	features = filepath.Join(dir, "df_yelp.csv")
	locations = filepath.Join(dir, "df_choropleth.csv")
	require.NoError(t, os.WriteFile(features, []byte(featuresCSV), 0o600))
	require.NoError(t, os.WriteFile(locations, []byte(locationsCSV), 0o600))
	return features, locations
}

func TestCSVDatasetRepo_loadsBothFiles(t *testing.T) {
	features, locations := writeDatasets(t)
	r := repo.NewCSVDatasetRepo(features, locations)

	table, err := r.Features(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3)

	points, err := r.Locations(context.Background())
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestCSVDatasetRepo_missingFile(t *testing.T) {
	dir := t.TempDir()
	r := repo.NewCSVDatasetRepo(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "nope2.csv"))

	_, err := r.Features(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = r.Locations(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
