package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-mm-features/internal/pipeline"
	"github.com/pable/go-mm-features/internal/report"
	"github.com/pable/go-mm-features/internal/storage"
	"github.com/pable/go-mm-features/internal/tabular"
)

var (
	queryYears   string
	queryExclude []int
)

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run SQL over the output tables of a processed year list",
	Long: `Loads features_<min>-<max>.csv and matchups_<min>-<max>.csv for the given
year list into an in-memory SQLite database as tables "features" and
"matchups", runs the query, and prints the result. Blank cells are NULL.

Example:
  mmfeatures query --years 2015-2024 \
    "SELECT Season, COUNT(*) FROM matchups GROUP BY Season"
  mmfeatures query --years 2024 \
    "SELECT TeamName, seed, EfficiencyDiff FROM features WHERE IsTourney = 'True' ORDER BY seed"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryYears, "years", "", "year list the outputs were produced for (required)")
	queryCmd.Flags().IntSliceVar(&queryExclude, "exclude", nil, "seasons excluded when the outputs were produced")
	_ = queryCmd.MarkFlagRequired("years")
}

func runQuery(_ *cobra.Command, args []string) error {
	years, err := parseYears(queryYears, queryExclude)
	if err != nil {
		return err
	}
	featuresPath, matchupsPath := pipeline.OutputPaths(cfg.ProcessedDir, years)

	db, err := storage.Open()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	for _, t := range []struct{ name, path string }{
		{"features", featuresPath},
		{"matchups", matchupsPath},
	} {
		frame, err := tabular.Read(t.path)
		if err != nil {
			return fmt.Errorf("read %s (run 'mmfeatures process' first?): %w", t.path, err)
		}
		if err := db.Import(t.name, frame); err != nil {
			return fmt.Errorf("import %s: %w", t.name, err)
		}
	}

	cols, rows, err := db.QueryRaw(strings.Join(args, " "))
	if err != nil {
		return err
	}
	report.PrintRows(os.Stdout, cols, rows)
	return nil
}
