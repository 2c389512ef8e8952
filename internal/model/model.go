package model

import (
	"math"
	"strconv"
	"strings"
)

// Column names the pipeline reads or writes by name.
const (
	ColTeamName     = "TeamName"
	ColConference   = "Conference"
	ColAdjOE        = "AdjOE"
	ColAdjDE        = "AdjDE"
	ColAdjTempo     = "AdjTempo"
	ColRankAdjOE    = "RankAdjOE"
	ColRankAdjDE    = "RankAdjDE"
	ColRankAdjTempo = "RankAdjTempo"
	ColSeed         = "seed"
	ColSeason       = "Season"

	ColEfficiencyDiff   = "EfficiencyDiff"
	ColTempoAdjOffEff   = "TempoAdjOffEff"
	ColTempoAdjDefEff   = "TempoAdjDefEff"
	ColOverallRankScore = "OverallRankScore"
	ColIsTourney        = "IsTourney"

	ColTeam1               = "Team1"
	ColTeam2               = "Team2"
	ColSeedDiff            = "SeedDiff"
	ColEfficiencyDiffDelta = "EfficiencyDiffDelta"
	ColTempoRatio          = "TempoRatio"
)

// OptFloat is a number that may be absent.
type OptFloat struct {
	Value float64
	Valid bool
}

// Some returns a present OptFloat.
func Some(v float64) OptFloat { return OptFloat{Value: v, Valid: true} }

// ParseOptFloat parses s as a number. Blank, non-numeric, NaN and infinite
// inputs yield an absent value rather than an error.
func ParseOptFloat(s string) OptFloat {
	s = strings.TrimSpace(s)
	if s == "" {
		return OptFloat{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return OptFloat{}
	}
	return Some(v)
}

// String renders the value for CSV output; absent values render blank.
func (o OptFloat) String() string {
	if !o.Valid {
		return ""
	}
	return FormatFloat(o.Value)
}

// FormatFloat renders v in the shortest form that round-trips, so output
// files are byte-stable across runs.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatBool renders booleans the way the downstream notebooks expect them.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ---- Input ----

// TeamSeason is one team's pre-tournament summary for one season.
type TeamSeason struct {
	TeamName     string
	Conference   string
	AdjOE        float64
	AdjDE        float64
	AdjTempo     float64
	RankAdjOE    float64
	RankAdjDE    float64
	RankAdjTempo float64
	SeedRaw      string
	Season       int

	// Cells holds every input column by name, exactly as read, so columns the
	// pipeline does not interpret can be carried into the feature table.
	Cells map[string]string
}

// SeasonTable is one season's summary file as loaded.
type SeasonTable struct {
	Season  int
	Path    string
	Columns []string
	Rows    []TeamSeason
}

// Aggregate is the season-major concatenation of several SeasonTables.
type Aggregate struct {
	Seasons []int // loaded, in request order
	Skipped []int // requested but failed to load
	Columns []string
	Rows    []TeamSeason
}

// ---- Derived ----

// Feature is a TeamSeason extended with the engineered columns.
type Feature struct {
	TeamSeason

	EfficiencyDiff   float64
	TempoAdjOffEff   float64
	TempoAdjDefEff   float64
	OverallRankScore float64
	Seed             OptFloat
	IsTourney        bool
}

// FeatureTable is the Feature Builder's output. Columns lists the carried
// input columns in output order; the derived columns follow them.
type FeatureTable struct {
	Columns []string
	Rows    []Feature
}

// Matchup is one ordered pair of distinct tournament teams in one season.
type Matchup struct {
	Team1  string
	Team2  string
	Season int
	Side1  Feature
	Side2  Feature

	SeedDiff            float64
	EfficiencyDiffDelta float64
	TempoRatio          float64
}

// DerivedColumns are appended to the carried input columns in the feature file.
var DerivedColumns = []string{
	ColEfficiencyDiff, ColTempoAdjOffEff, ColTempoAdjDefEff, ColOverallRankScore, ColIsTourney,
}

// MatchupSideColumns are the per-team fields repeated with _1/_2 suffixes.
var MatchupSideColumns = []string{
	ColConference, ColAdjOE, ColAdjDE, ColAdjTempo,
	ColRankAdjOE, ColRankAdjDE, ColRankAdjTempo,
	ColEfficiencyDiff, ColTempoAdjOffEff, ColTempoAdjDefEff, ColOverallRankScore,
	ColSeed, ColIsTourney,
}

// Header returns the full feature file header.
func (t FeatureTable) Header() []string {
	h := make([]string, 0, len(t.Columns)+len(DerivedColumns))
	h = append(h, t.Columns...)
	return append(h, DerivedColumns...)
}

// Record renders f against the feature file header.
func (t FeatureTable) Record(f Feature) []string {
	rec := make([]string, 0, len(t.Columns)+len(DerivedColumns))
	for _, c := range t.Columns {
		switch c {
		case ColSeason:
			rec = append(rec, strconv.Itoa(f.Season))
		case ColSeed:
			rec = append(rec, f.Seed.String())
		default:
			rec = append(rec, f.Cells[c])
		}
	}
	return append(rec,
		FormatFloat(f.EfficiencyDiff),
		FormatFloat(f.TempoAdjOffEff),
		FormatFloat(f.TempoAdjDefEff),
		FormatFloat(f.OverallRankScore),
		FormatBool(f.IsTourney),
	)
}

// MatchupHeader returns the matchup file header.
func MatchupHeader() []string {
	h := []string{ColTeam1, ColTeam2, ColSeason}
	for _, suffix := range []string{"_1", "_2"} {
		for _, c := range MatchupSideColumns {
			h = append(h, c+suffix)
		}
	}
	return append(h, ColSeedDiff, ColEfficiencyDiffDelta, ColTempoRatio)
}

// Record renders m against MatchupHeader.
func (m Matchup) Record() []string {
	rec := []string{m.Team1, m.Team2, strconv.Itoa(m.Season)}
	rec = append(rec, sideRecord(m.Side1)...)
	rec = append(rec, sideRecord(m.Side2)...)
	return append(rec,
		FormatFloat(m.SeedDiff),
		FormatFloat(m.EfficiencyDiffDelta),
		FormatFloat(m.TempoRatio),
	)
}

func sideRecord(f Feature) []string {
	return []string{
		f.Conference,
		FormatFloat(f.AdjOE),
		FormatFloat(f.AdjDE),
		FormatFloat(f.AdjTempo),
		FormatFloat(f.RankAdjOE),
		FormatFloat(f.RankAdjDE),
		FormatFloat(f.RankAdjTempo),
		FormatFloat(f.EfficiencyDiff),
		FormatFloat(f.TempoAdjOffEff),
		FormatFloat(f.TempoAdjDefEff),
		FormatFloat(f.OverallRankScore),
		f.Seed.String(),
		FormatBool(f.IsTourney),
	}
}
