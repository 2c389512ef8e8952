package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-mm-features/internal/matchup"
	"github.com/pable/go-mm-features/internal/metrics"
	"github.com/pable/go-mm-features/internal/model"
	"github.com/pable/go-mm-features/internal/season"
	"github.com/pable/go-mm-features/internal/tabular"
	"github.com/pable/go-mm-features/internal/testutil"
)

// gauge returns the first sample of the named metric, or -1 if absent.
func gauge(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	mfs, err := g.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		m := mf.GetMetric()[0]
		if c := m.GetCounter(); c != nil {
			return c.GetValue()
		}
		return m.GetGauge().GetValue()
	}
	return -1
}

func setup(t *testing.T) (rawDir, outDir string) {
	t.Helper()
	root := t.TempDir()
	rawDir = filepath.Join(root, "raw")
	outDir = filepath.Join(root, "processed")
	require.NoError(t, os.MkdirAll(rawDir, 0755))
	return rawDir, outDir
}

func TestOutputPaths(t *testing.T) {
	f, m := OutputPaths("out", []int{2023, 2019, 2021})
	assert.Equal(t, filepath.Join("out", "features_2019-2023.csv"), f)
	assert.Equal(t, filepath.Join("out", "matchups_2019-2023.csv"), m)
}

func TestRun_EndToEnd(t *testing.T) {
	rawDir, outDir := setup(t)
	testutil.WriteSummary(t, rawDir, 2021, append(testutil.Seeded("A", 4), testutil.Unseeded("X", 3)...))
	testutil.WriteSummary(t, rawDir, 2022, testutil.Unseeded("Y", 5))

	rec := metrics.New()
	d := New(season.NewLoader(rawDir), outDir, WithMetrics(rec))
	res, err := d.Run(context.Background(), []int{2021, 2022, 2023})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "features_2021-2023.csv"), res.FeaturesPath)
	assert.Equal(t, filepath.Join(outDir, "matchups_2021-2023.csv"), res.MatchupsPath)
	assert.Len(t, res.Features.Rows, 12)
	assert.Len(t, res.Matchups, 12)
	assert.Equal(t, []SeasonSummary{
		{Season: 2021, Loaded: true, Teams: 7, TourneyTeams: 4, Matchups: 12},
		{Season: 2022, Loaded: true, Teams: 5},
		{Season: 2023},
	}, res.Seasons)

	feats, err := tabular.Read(res.FeaturesPath)
	require.NoError(t, err)
	wantCols := append(append([]string{}, testutil.SummaryHeader...), model.ColSeason)
	assert.Equal(t, append(wantCols, model.DerivedColumns...), feats.Columns)
	assert.Len(t, feats.Rows, 12)
	seasonCol := feats.Index(model.ColSeason)
	assert.Equal(t, "2021", feats.Rows[0][seasonCol])
	assert.Equal(t, "2022", feats.Rows[11][seasonCol])

	matchups, err := tabular.Read(res.MatchupsPath)
	require.NoError(t, err)
	assert.Equal(t, model.MatchupHeader(), matchups.Columns)
	assert.Len(t, matchups.Rows, 12)

	g := rec.Gatherer()
	assert.Equal(t, 2.0, gauge(t, g, "mmfeatures_seasons_loaded_total"))
	assert.Equal(t, 1.0, gauge(t, g, "mmfeatures_seasons_skipped_total"))
	assert.Equal(t, 1.0, gauge(t, g, "mmfeatures_seasons_without_tourney_total"))
	assert.Equal(t, 12.0, gauge(t, g, "mmfeatures_feature_rows"))
	assert.Equal(t, 12.0, gauge(t, g, "mmfeatures_matchup_rows"))
	assert.Equal(t, 1.0, gauge(t, g, "mmfeatures_last_success"))
}

func TestRun_Idempotent(t *testing.T) {
	rawDir, outDir := setup(t)
	testutil.WriteSummary(t, rawDir, 2018, testutil.Seeded("A", 6))
	testutil.WriteSummary(t, rawDir, 2019, append(testutil.Unseeded("B", 2), testutil.Seeded("C", 4)...))

	d := New(season.NewLoader(rawDir), outDir)
	res, err := d.Run(context.Background(), []int{2018, 2019})
	require.NoError(t, err)
	f1, err := os.ReadFile(res.FeaturesPath)
	require.NoError(t, err)
	m1, err := os.ReadFile(res.MatchupsPath)
	require.NoError(t, err)

	res, err = d.Run(context.Background(), []int{2018, 2019})
	require.NoError(t, err)
	f2, err := os.ReadFile(res.FeaturesPath)
	require.NoError(t, err)
	m2, err := os.ReadFile(res.MatchupsPath)
	require.NoError(t, err)

	assert.Equal(t, f1, f2)
	assert.Equal(t, m1, m2)
}

func TestRun_ByteOrderMarkAndPassthroughCells(t *testing.T) {
	rawDir, outDir := setup(t)
	testutil.WriteFile(t, rawDir, "summary19_pt.csv",
		"\ufeffTeamName,Coach,AdjOE,AdjDE,AdjTempo,RankAdjOE,RankAdjDE,RankAdjTempo,seed\n"+
			"Duke,NA,119.1,89.0,73.3,7,6,12,1\n"+
			"Yale,James Jones,108.0,97.5,66.2,80,120,250,14\n")

	res, err := New(season.NewLoader(rawDir), outDir).Run(context.Background(), []int{2019})
	require.NoError(t, err)
	assert.Len(t, res.Matchups, 2)

	feats, err := tabular.Read(res.FeaturesPath)
	require.NoError(t, err)
	assert.Equal(t, model.ColTeamName, feats.Columns[0])
	coach := feats.Index("Coach")
	require.GreaterOrEqual(t, coach, 0)
	assert.Equal(t, "NA", feats.Rows[0][coach])
	assert.Equal(t, "James Jones", feats.Rows[1][coach])
}

func TestRun_NoSeasonsLoaded(t *testing.T) {
	rawDir, outDir := setup(t)

	_, err := New(season.NewLoader(rawDir), outDir).Run(context.Background(), []int{2019})
	require.Error(t, err)
	assert.True(t, errors.Is(err, season.ErrNoSeasonsLoaded))
	assertNoOutputs(t, outDir)

	_, err = New(season.NewLoader(rawDir), outDir).Run(context.Background(), nil)
	assert.True(t, errors.Is(err, season.ErrNoSeasonsLoaded))
}

func TestRun_FatalErrorsWriteNothing(t *testing.T) {
	rawDir, outDir := setup(t)
	dup := testutil.Seeded("A", 3)
	testutil.WriteSummary(t, rawDir, 2020, append(dup, dup[0]))
	testutil.WriteSummary(t, rawDir, 2021, testutil.Unseeded("U", 4))

	rec := metrics.New()
	_, err := New(season.NewLoader(rawDir), outDir, WithMetrics(rec)).Run(context.Background(), []int{2020})
	assert.True(t, errors.Is(err, matchup.ErrAmbiguousTeamJoin))
	assertNoOutputs(t, outDir)
	assert.Equal(t, 0.0, gauge(t, rec.Gatherer(), "mmfeatures_last_success"))

	_, err = New(season.NewLoader(rawDir), outDir).Run(context.Background(), []int{2021})
	assert.True(t, errors.Is(err, matchup.ErrNoMatchupsGenerated))
	assertNoOutputs(t, outDir)
}

func assertNoOutputs(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return
	}
	require.NoError(t, err)
	assert.Empty(t, entries)
}
