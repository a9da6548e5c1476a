package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/flavortown/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// pgDatasetRepo reads both datasets from the features and locations tables.
type pgDatasetRepo struct {
	db db
}

// NewPostgresDatasetRepo constructs a DatasetRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresDatasetRepo(db db) DatasetRepo {
	return &pgDatasetRepo{db: db}
}

// Features returns every feature row in insertion order, which is the
// order of the file the table was seeded from.
func (r *pgDatasetRepo) Features(ctx context.Context) (domain.FeatureTable, error) {
	const q = `
		SELECT state, season, episode, title, air_date, location, places_visited,
		       rating, price, latitude, longitude
		FROM features
		ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return domain.FeatureTable{}, fmt.Errorf("repo.DatasetRepo.Features: %w", err)
	}
	defer rows.Close()

	table := domain.FeatureTable{Columns: append([]string(nil), CanonicalColumns...)}
	for rows.Next() {
		var f domain.FeatureRow
		err := rows.Scan(&f.State, &f.Season, &f.Episode, &f.Title, &f.AirDate, &f.Location,
			&f.PlacesVisited, &f.Rating, &f.Price, &f.Latitude, &f.Longitude)
		if err != nil {
			return domain.FeatureTable{}, fmt.Errorf("repo.DatasetRepo.Features: scan: %w", err)
		}
		table.Rows = append(table.Rows, f)
	}
	if err := rows.Err(); err != nil {
		return domain.FeatureTable{}, fmt.Errorf("repo.DatasetRepo.Features: rows: %w", err)
	}
	return table, nil
}

// Locations returns every marker in insertion order.
func (r *pgDatasetRepo) Locations(ctx context.Context) ([]domain.LocationPoint, error) {
	const q = `
		SELECT longitude, latitude, location, places_visited
		FROM locations
		ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DatasetRepo.Locations: %w", err)
	}
	defer rows.Close()

	var points []domain.LocationPoint
	for rows.Next() {
		var p domain.LocationPoint
		if err := rows.Scan(&p.Longitude, &p.Latitude, &p.Location, &p.PlacesVisited); err != nil {
			return nil, fmt.Errorf("repo.DatasetRepo.Locations: scan: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DatasetRepo.Locations: rows: %w", err)
	}
	return points, nil
}

// ImportResult reports how many rows Import wrote to each table.
type ImportResult struct {
	Features  int64
	Locations int64
}

// Import replaces the contents of the features and locations tables with
// the given datasets. Run it inside a transaction so readers never observe
// a half-seeded database.
func Import(ctx context.Context, db db, table domain.FeatureTable, points []domain.LocationPoint) (ImportResult, error) {
	if _, err := db.Exec(ctx, `TRUNCATE features, locations RESTART IDENTITY`); err != nil {
		return ImportResult{}, fmt.Errorf("repo.Import: truncate: %w", err)
	}

	featureRows := make([][]any, 0, len(table.Rows))
	for _, f := range table.Rows {
		featureRows = append(featureRows, []any{
			f.State, f.Season, f.Episode, f.Title, f.AirDate, f.Location,
			f.PlacesVisited, f.Rating, f.Price, f.Latitude, f.Longitude,
		})
	}
	nf, err := db.CopyFrom(ctx, pgx.Identifier{"features"},
		[]string{"state", "season", "episode", "title", "air_date", "location",
			"places_visited", "rating", "price", "latitude", "longitude"},
		pgx.CopyFromRows(featureRows))
	if err != nil {
		return ImportResult{}, fmt.Errorf("repo.Import: features: %w", err)
	}

	nl, err := db.CopyFrom(ctx, pgx.Identifier{"locations"},
		[]string{"longitude", "latitude", "location", "places_visited"},
		pgx.CopyFromSlice(len(points), func(i int) ([]any, error) {
			p := points[i]
			return []any{p.Longitude, p.Latitude, p.Location, p.PlacesVisited}, nil
		}))
	if err != nil {
		return ImportResult{}, fmt.Errorf("repo.Import: locations: %w", err)
	}

	return ImportResult{Features: nf, Locations: nl}, nil
}
