package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pable/go-mm-features/internal/config"
	"github.com/pable/go-mm-features/internal/logger"
)

var (
	configPath   string
	rawDir       string
	processedDir string
	pattern      string
	logLevel     string
	metricsFile  string

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mmfeatures",
	Short: "College basketball season feature and matchup builder",
	Long: `Load pre-tournament team summaries for a list of seasons, derive efficiency,
tempo and rank features, and expand each season's seeded teams into pairwise
tournament matchups. Writes features_<min>-<max>.csv and matchups_<min>-<max>.csv.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file (default $"+config.EnvConfigFile+")")
	pf.StringVar(&rawDir, "raw-dir", "", "directory holding season summary files")
	pf.StringVar(&processedDir, "processed-dir", "", "directory receiving output tables")
	pf.StringVar(&pattern, "pattern", "", "summary file name pattern, {yy} = two-digit season")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&metricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(seasonsCmd)
}

// setup loads config and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig(cmd.Context(), cmd.Flags())
	if err != nil {
		return err
	}
	l, err := logger.New(os.Stderr, c.LogLevel, c.LogLevel == "debug")
	if err != nil {
		return err
	}
	cfg, log = c, l
	return nil
}

// loadConfig layers explicitly set flags over file and env config, then
// validates the result once.
func loadConfig(ctx context.Context, flags *pflag.FlagSet) (*config.Config, error) {
	c, err := config.Load(ctx, configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("raw-dir") {
		c.RawDir = rawDir
	}
	if flags.Changed("processed-dir") {
		c.ProcessedDir = processedDir
	}
	if flags.Changed("pattern") {
		c.SummaryPattern = pattern
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("metrics-file") {
		c.MetricsFile = metricsFile
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
