package season

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-mm-features/internal/model"
	"github.com/pable/go-mm-features/internal/testutil"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "summary19_pt.csv", FileName(DefaultPattern, 2019))
	assert.Equal(t, "summary05_pt.csv", FileName(DefaultPattern, 2005))
	assert.Equal(t, "kp-00.csv", FileName("kp-{yy}.csv", 2000))
}

func TestLoad_StampsSeasonAndCarriesColumns(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteSummary(t, dir, 2019, []testutil.Team{
		{Name: "Virginia", Conf: "ACC", AdjOE: 123.4, AdjDE: 89.2, AdjTempo: 59.4, RankOE: 2, RankDE: 5, RankTempo: 353, Seed: "1"},
		{Name: "Kansas St.", Conf: "B12", AdjOE: 107.9, AdjDE: 89.7, AdjTempo: 62.1, RankOE: 90, RankDE: 6, RankTempo: 330, Seed: ""},
	})

	table, err := NewLoader(dir).Load(context.Background(), 2019)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2019, table.Season)
	assert.Equal(t, append(append([]string{}, testutil.SummaryHeader...), model.ColSeason), table.Columns)

	va := table.Rows[0]
	assert.Equal(t, "Virginia", va.TeamName)
	assert.Equal(t, "ACC", va.Conference)
	assert.Equal(t, 2019, va.Season)
	assert.InDelta(t, 123.4, va.AdjOE, 1e-9)
	assert.InDelta(t, 353, va.RankAdjTempo, 1e-9)
	assert.Equal(t, "1", va.SeedRaw)
	assert.Equal(t, "89.2", va.Cells[model.ColAdjDE])

	assert.Equal(t, "", table.Rows[1].SeedRaw)
}

func TestLoad_ExistingSeasonColumnOverwritten(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "summary21_pt.csv",
		"Season,TeamName,AdjOE,AdjDE,AdjTempo,RankAdjOE,RankAdjDE,RankAdjTempo,seed\n"+
			"1999,Gonzaga,126.4,89.8,74.0,1,10,6,1\n")

	table, err := NewLoader(dir).Load(context.Background(), 2021)
	require.NoError(t, err)

	assert.Equal(t, "Season", table.Columns[0])
	assert.Len(t, table.Columns, 9, "Season must not be appended twice")
	assert.Equal(t, 2021, table.Rows[0].Season)
	assert.Equal(t, "", table.Rows[0].Conference)
}

func TestLoad_ConferenceAlias(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "summary22_pt.csv",
		"TeamName,conf,AdjOE,AdjDE,AdjTempo,RankAdjOE,RankAdjDE,RankAdjTempo,seed\n"+
			"Baylor,B12,117.8,91.2,67.0,12,14,170,1\n")

	table, err := NewLoader(dir).Load(context.Background(), 2022)
	require.NoError(t, err)
	assert.Equal(t, "B12", table.Rows[0].Conference)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load(context.Background(), 2019)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSeasonLoad))

	var sle *SeasonLoadError
	require.True(t, errors.As(err, &sle))
	assert.Equal(t, 2019, sle.Year)
	assert.Contains(t, sle.Path, "summary19_pt.csv")
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "summary19_pt.csv",
		"TeamName,AdjOE,AdjDE,AdjTempo,RankAdjOE,RankAdjDE,RankAdjTempo\n"+
			"Duke,119.1,89.0,73.3,7,6,12\n")

	_, err := NewLoader(dir).Load(context.Background(), 2019)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSeasonLoad))
	assert.Contains(t, err.Error(), "missing columns: seed")
}

func TestLoad_MalformedNumberFailsWholeSeason(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "summary19_pt.csv",
		"TeamName,AdjOE,AdjDE,AdjTempo,RankAdjOE,RankAdjDE,RankAdjTempo,seed\n"+
			"Duke,119.1,89.0,73.3,7,6,12,1\n"+
			"Gonzaga,n/a,95.0,70.1,1,16,24,1\n")

	_, err := NewLoader(dir).Load(context.Background(), 2019)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSeasonLoad))
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "AdjOE")
}

func TestLoad_BlankTeamName(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "summary19_pt.csv",
		"TeamName,AdjOE,AdjDE,AdjTempo,RankAdjOE,RankAdjDE,RankAdjTempo,seed\n"+
			" ,119.1,89.0,73.3,7,6,12,1\n")

	_, err := NewLoader(dir).Load(context.Background(), 2019)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blank TeamName")
}

func TestLoad_CustomPattern(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "kenpom_24.csv", testutil.SummaryCSV(testutil.Seeded("T", 3)))

	l := NewLoader(dir, WithPattern("kenpom_{yy}.csv"))
	table, err := l.Load(context.Background(), 2024)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3)
}

func TestLoad_ByteOrderMarkHeader(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "summary19_pt.csv", "\ufeff"+testutil.SummaryCSV(testutil.Seeded("A", 3)))

	table, err := NewLoader(dir).Load(context.Background(), 2019)
	require.NoError(t, err)
	assert.Equal(t, model.ColTeamName, table.Columns[0])
	assert.Len(t, table.Rows, 3)
	assert.Equal(t, "A1", table.Rows[0].TeamName)
}
