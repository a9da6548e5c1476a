package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pkordes/flavortown/internal/config"
	"github.com/pkordes/flavortown/internal/domain"
	"github.com/pkordes/flavortown/internal/filter"
	"github.com/pkordes/flavortown/internal/repo"
)

func newFilterCmd(g *globalFlags) *cobra.Command {
	var sel domain.Selection
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the feature rows matching a region and season selection as CSV",
		Long: `Applies the same filter as the dashboard table. Omitting --region (or
--season) matches every region (or season) in the dataset.`,
		Example: `  ftctl filter --region California --region Texas --season 2
  ftctl filter --region "Washington, D.C." --season 14,29`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFilter(cmd.Context(), g, cmd.OutOrStdout(), sel)
		},
	}
	// Region labels may contain commas, so each --region is taken whole.
	cmd.Flags().StringArrayVar(&sel.Regions, "region", nil, "region (state) to keep; repeatable")
	cmd.Flags().IntSliceVar(&sel.Seasons, "season", nil, "season to keep; repeatable")
	return cmd
}

func runFilter(ctx context.Context, g *globalFlags, w io.Writer, sel domain.Selection) error {
	profile, err := config.LoadProfile(g.profilePath)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	table, err := repo.NewCSVDatasetRepo(g.featuresPath, g.locationsPath).Features(ctx)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	rows := filter.ApplySelection(table.Rows, sel)
	if err := repo.WriteFeatures(w, table.VisibleColumns(profile.HiddenColumns), rows); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	return nil
}
