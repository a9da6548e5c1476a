// Package repo loads the dashboard datasets. Each source has its own file
// with a DatasetRepo implementation; the rest of the application only sees
// the interface and the immutable domain values it returns.
package repo

import (
	"context"
	"fmt"
	"os"

	"github.com/pkordes/flavortown/internal/domain"
)

// DatasetRepo reads the two datasets the dashboard is built from.
// Implementations are called once at startup.
type DatasetRepo interface {
	// Features returns the universe table of featured restaurants.
	Features(ctx context.Context) (domain.FeatureTable, error)

	// Locations returns the map markers.
	Locations(ctx context.Context) ([]domain.LocationPoint, error)
}

// csvDatasetRepo reads both datasets from CSV files on disk.
type csvDatasetRepo struct {
	featuresPath  string
	locationsPath string
}

// NewCSVDatasetRepo constructs a DatasetRepo backed by two CSV files.
// The files are opened on each call, not at construction.
func NewCSVDatasetRepo(featuresPath, locationsPath string) DatasetRepo {
	return &csvDatasetRepo{featuresPath: featuresPath, locationsPath: locationsPath}
}

// Features parses the feature CSV file.
func (r *csvDatasetRepo) Features(_ context.Context) (domain.FeatureTable, error) {
	f, err := os.Open(r.featuresPath)
	if err != nil {
		return domain.FeatureTable{}, fmt.Errorf("repo.DatasetRepo.Features: %w", err)
	}
	defer f.Close()

	table, err := ReadFeatures(f)
	if err != nil {
		return domain.FeatureTable{}, fmt.Errorf("repo.DatasetRepo.Features: %s: %w", r.featuresPath, err)
	}
	return table, nil
}

// Locations parses the location CSV file.
func (r *csvDatasetRepo) Locations(_ context.Context) ([]domain.LocationPoint, error) {
	f, err := os.Open(r.locationsPath)
	if err != nil {
		return nil, fmt.Errorf("repo.DatasetRepo.Locations: %w", err)
	}
	defer f.Close()

	points, err := ReadLocations(f)
	if err != nil {
		return nil, fmt.Errorf("repo.DatasetRepo.Locations: %s: %w", r.locationsPath, err)
	}
	return points, nil
}
