// Package cli implements the geotrace command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/jengzang/geotrace-go/internal/config"
)

// RootCommand creates and returns the root command
func RootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "geotrace",
		Short:         "GeoTrace movement intelligence",
		Long:          `Cluster geotagged observations into places and report how the subject moves between them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a geotrace.yaml config file")

	loadConfig := func() (*config.Config, error) {
		return config.Load(configFile)
	}

	rootCmd.AddCommand(
		analyzeCommand(loadConfig),
		serveCommand(loadConfig),
		migrateCommand(loadConfig),
	)

	return rootCmd
}

type configLoader func() (*config.Config, error)
