package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/spf13/cobra"

	"github.com/pkordes/flavortown/internal/repo"
	"github.com/pkordes/flavortown/migrations"
)

func newSeedCmd(g *globalFlags) *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Migrate Postgres and load both CSV datasets into it",
		Long: `Applies pending schema migrations, then replaces the contents of the
features and locations tables with the CSV datasets in a single transaction.
Point the server at the result with DATA_SOURCE=postgres.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				return errors.New("seed: --database-url or DATABASE_URL is required")
			}
			return runSeed(cmd.Context(), g, dsn)
		},
	}
	cmd.Flags().StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")
	return cmd
}

func runSeed(ctx context.Context, g *globalFlags, dsn string) error {
	// Parse the files first so a bad dataset never touches the database.
	source := repo.NewCSVDatasetRepo(g.featuresPath, g.locationsPath)
	table, err := source.Features(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	points, err := source.Locations(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("seed: open: %w", err)
	}
	defer sqlDB.Close()

	applied, err := migrations.Up(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	for _, r := range applied {
		slog.Info("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("seed: connect: %w", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := repo.Import(ctx, tx, table, points)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}

	slog.Info("datasets imported", "features", res.Features, "locations", res.Locations)
	return nil
}
