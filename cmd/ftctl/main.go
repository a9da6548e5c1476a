// Command ftctl is the operator tool for the Flavortown dashboard: it seeds
// Postgres from the CSV datasets, renders the map offline, and filters the
// feature table from the shell.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	featuresPath  string
	locationsPath string
	profilePath   string
	verbose       bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "ftctl",
		Short:         "Operate the Flavortown dashboard datasets",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.featuresPath, "features", envOr("FEATURES_PATH", "data/df_yelp.csv"), "feature dataset CSV")
	pf.StringVar(&g.locationsPath, "locations", envOr("LOCATIONS_PATH", "data/df_choropleth.csv"), "location dataset CSV")
	pf.StringVar(&g.profilePath, "profile", os.Getenv("PROFILE_PATH"), "optional YAML dashboard profile")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newSeedCmd(g),
		newRenderMapCmd(g),
		newFilterCmd(g),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
