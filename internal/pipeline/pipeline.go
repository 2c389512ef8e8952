// Package pipeline runs season loading, feature building and matchup
// generation for a list of years and writes the two output tables.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pable/go-mm-features/internal/features"
	"github.com/pable/go-mm-features/internal/logger"
	"github.com/pable/go-mm-features/internal/matchup"
	"github.com/pable/go-mm-features/internal/metrics"
	"github.com/pable/go-mm-features/internal/model"
	"github.com/pable/go-mm-features/internal/season"
	"github.com/pable/go-mm-features/internal/tabular"
)

// SeasonSummary describes one requested season after a run.
type SeasonSummary struct {
	Season       int
	Loaded       bool
	Teams        int
	TourneyTeams int
	Matchups     int
}

// Result is everything a successful run produced.
type Result struct {
	Years        []int
	Features     *model.FeatureTable
	Matchups     []model.Matchup
	Seasons      []SeasonSummary
	FeaturesPath string
	MatchupsPath string
}

// Driver wires the components together.
type Driver struct {
	src    season.Source
	outDir string
	log    logger.Logger
	rec    *metrics.Recorder
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger handed to every stage.
func WithLogger(log logger.Logger) Option {
	return func(d *Driver) {
		if log != nil {
			d.log = log
		}
	}
}

// WithMetrics records run counters on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(d *Driver) { d.rec = rec }
}

// New returns a Driver reading seasons from src and writing into outDir.
func New(src season.Source, outDir string, opts ...Option) *Driver {
	d := &Driver{src: src, outDir: outDir, log: logger.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	if d.rec == nil {
		d.rec = metrics.New()
	}
	return d
}

// OutputPaths returns the feature and matchup file paths for a year list,
// named by its minimum and maximum year.
func OutputPaths(dir string, years []int) (featuresPath, matchupsPath string) {
	lo, hi := slices.Min(years), slices.Max(years)
	featuresPath = filepath.Join(dir, fmt.Sprintf("features_%d-%d.csv", lo, hi))
	matchupsPath = filepath.Join(dir, fmt.Sprintf("matchups_%d-%d.csv", lo, hi))
	return featuresPath, matchupsPath
}

// Run processes years (any order, gaps allowed) and writes both tables.
// Every error is terminal and leaves no output file behind; only a season
// that fails to load is skipped.
func (d *Driver) Run(ctx context.Context, years []int) (*Result, error) {
	if len(years) == 0 {
		return nil, fmt.Errorf("%w: empty year list", season.ErrNoSeasonsLoaded)
	}

	agg, err := season.Aggregate(ctx, d.src, years, d.log.Named("season"))
	if err != nil {
		return nil, err
	}
	d.rec.SeasonsLoaded(len(agg.Seasons))
	d.rec.SeasonsSkipped(len(agg.Skipped))

	table, err := features.Build(agg)
	if err != nil {
		return nil, err
	}
	d.rec.FeatureRows(len(table.Rows))

	gen, err := matchup.Generate(ctx, table, d.log.Named("matchup"))
	if err != nil {
		return nil, err
	}
	d.rec.MatchupRows(len(gen.Matchups))
	for _, s := range gen.Seasons {
		d.rec.SeasonMatchups(s.Season, s.Matchups)
		if s.WithoutTourney {
			d.rec.SeasonWithoutTourney()
		}
	}

	featuresPath, matchupsPath := OutputPaths(d.outDir, years)
	if err := writeOutputs(table, gen.Matchups, featuresPath, matchupsPath); err != nil {
		return nil, err
	}
	d.rec.Succeeded()
	d.log.Info(ctx, "wrote outputs",
		logger.String("features", featuresPath),
		logger.Int("feature_rows", len(table.Rows)),
		logger.String("matchups", matchupsPath),
		logger.Int("matchup_rows", len(gen.Matchups)))

	return &Result{
		Years:        years,
		Features:     table,
		Matchups:     gen.Matchups,
		Seasons:      summarize(years, agg, gen),
		FeaturesPath: featuresPath,
		MatchupsPath: matchupsPath,
	}, nil
}

// writeOutputs stages both files before committing either.
func writeOutputs(table *model.FeatureTable, matchups []model.Matchup, featuresPath, matchupsPath string) error {
	featureRecs := make([][]string, len(table.Rows))
	for i, f := range table.Rows {
		featureRecs[i] = table.Record(f)
	}
	matchupRecs := make([][]string, len(matchups))
	for i, m := range matchups {
		matchupRecs[i] = m.Record()
	}

	fs, err := tabular.Stage(featuresPath, table.Header(), featureRecs)
	if err != nil {
		return fmt.Errorf("stage features: %w", err)
	}
	defer fs.Discard()
	ms, err := tabular.Stage(matchupsPath, model.MatchupHeader(), matchupRecs)
	if err != nil {
		return fmt.Errorf("stage matchups: %w", err)
	}
	defer ms.Discard()

	if err := fs.Commit(); err != nil {
		return err
	}
	if err := ms.Commit(); err != nil {
		_ = os.Remove(featuresPath)
		return err
	}
	return nil
}

// summarize lists each distinct requested year in request order.
func summarize(years []int, agg *model.Aggregate, gen *matchup.Result) []SeasonSummary {
	counts := make(map[int]matchup.SeasonCount, len(gen.Seasons))
	for _, s := range gen.Seasons {
		counts[s.Season] = s
	}
	loaded := make(map[int]bool, len(agg.Seasons))
	for _, y := range agg.Seasons {
		loaded[y] = true
	}

	seen := make(map[int]bool, len(years))
	out := make([]SeasonSummary, 0, len(years))
	for _, y := range years {
		if seen[y] {
			continue
		}
		seen[y] = true
		c := counts[y]
		out = append(out, SeasonSummary{
			Season:       y,
			Loaded:       loaded[y],
			Teams:        c.Teams,
			TourneyTeams: c.TourneyTeams,
			Matchups:     c.Matchups,
		})
	}
	return out
}
