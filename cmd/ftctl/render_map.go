package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/flavortown/internal/config"
	"github.com/pkordes/flavortown/internal/mapview"
	"github.com/pkordes/flavortown/internal/repo"
)

func newRenderMapCmd(g *globalFlags) *cobra.Command {
	var (
		out      string
		specOnly bool
	)
	cmd := &cobra.Command{
		Use:   "render-map",
		Short: "Write the location map as a standalone HTML document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("render-map: %w", err)
				}
				defer f.Close()
				w = f
			}
			return runRenderMap(cmd.Context(), g, w, specOnly)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&specOnly, "json", false, "write the Vega-Lite chart instead of the HTML document")
	return cmd
}

func runRenderMap(ctx context.Context, g *globalFlags, w io.Writer, specOnly bool) error {
	profile, err := config.LoadProfile(g.profilePath)
	if err != nil {
		return fmt.Errorf("render-map: %w", err)
	}
	points, err := repo.NewCSVDatasetRepo(g.featuresPath, g.locationsPath).Locations(ctx)
	if err != nil {
		return fmt.Errorf("render-map: %w", err)
	}
	m, err := mapview.Render(points, profile.Map)
	if err != nil {
		return fmt.Errorf("render-map: %w", err)
	}

	if specOnly {
		_, err = w.Write(m.Spec())
	} else {
		_, err = io.WriteString(w, m.Document())
	}
	if err != nil {
		return fmt.Errorf("render-map: write: %w", err)
	}
	return nil
}
