package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mm-features/internal/logger"
	"github.com/pable/go-mm-features/internal/metrics"
	"github.com/pable/go-mm-features/internal/model"
	"github.com/pable/go-mm-features/internal/pipeline"
	"github.com/pable/go-mm-features/internal/report"
	"github.com/pable/go-mm-features/internal/season"
)

var (
	processYears   string
	processExclude []int
	processSample  bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Build the feature and matchup tables for a list of seasons",
	Long: `Loads summary<yy>_pt.csv for each requested season, derives features and
tournament matchups, and writes both tables into the processed directory.

Seasons whose file is missing or malformed are skipped with a warning. Any
other failure aborts the run without writing either file.

Example:
  mmfeatures process --years 2015-2024 --exclude 2020
  mmfeatures process --years 2019,2021,2023 --sample`,
	Args: cobra.NoArgs,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processYears, "years", "", "seasons: comma list and/or ranges, e.g. 2015-2019,2021 (required)")
	processCmd.Flags().IntSliceVar(&processExclude, "exclude", nil, "seasons to leave out, e.g. 2020")
	processCmd.Flags().BoolVar(&processSample, "sample", false, "print one feature and one matchup row from the latest season")
	_ = processCmd.MarkFlagRequired("years")
}

func runProcess(cmd *cobra.Command, _ []string) error {
	years, err := parseYears(processYears, processExclude)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	rec := metrics.New()
	loader := season.NewLoader(cfg.RawDir, season.WithPattern(cfg.SummaryPattern))
	driver := pipeline.New(loader, cfg.ProcessedDir,
		pipeline.WithLogger(log),
		pipeline.WithMetrics(rec),
	)

	res, runErr := driver.Run(ctx, years)
	if cfg.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error(ctx, "write metrics file", logger.String("path", cfg.MetricsFile), logger.Error(err))
		}
	}
	if runErr != nil {
		return fmt.Errorf("process seasons %v: %w", years, runErr)
	}

	report.PrintRunSummary(os.Stdout, res)
	if processSample {
		printSample(res)
	}
	return nil
}

// printSample shows the first feature and matchup rows of the latest loaded season.
func printSample(res *pipeline.Result) {
	latest := 0
	for _, s := range res.Seasons {
		if s.Loaded && s.Season > latest {
			latest = s.Season
		}
	}

	for _, f := range res.Features.Rows {
		if f.Season == latest {
			report.PrintRecord(os.Stdout, fmt.Sprintf("Sample feature row (%d)", latest),
				res.Features.Header(), res.Features.Record(f))
			break
		}
	}
	for _, m := range res.Matchups {
		if m.Season == latest {
			report.PrintRecord(os.Stdout, fmt.Sprintf("Sample matchup row (%d)", latest),
				model.MatchupHeader(), m.Record())
			return
		}
	}
	fmt.Fprintf(os.Stdout, "\n(no matchups for %d)\n", latest)
}
