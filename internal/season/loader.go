// Package season loads per-season team summary tables and concatenates them
// into one multi-season table.
package season

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pable/go-mm-features/internal/model"
	"github.com/pable/go-mm-features/internal/tabular"
)

// YearToken is replaced by the two-digit season suffix in file patterns.
const YearToken = "{yy}"

// DefaultPattern names pre-tournament summary files, e.g. summary19_pt.csv.
const DefaultPattern = "summary" + YearToken + "_pt.csv"

// requiredColumns must all be present in a summary file.
var requiredColumns = []string{
	model.ColTeamName,
	model.ColAdjOE, model.ColAdjDE, model.ColAdjTempo,
	model.ColRankAdjOE, model.ColRankAdjDE, model.ColRankAdjTempo,
	model.ColSeed,
}

// conferenceColumns are accepted spellings of the optional conference column.
var conferenceColumns = []string{model.ColConference, "Conf", "conf"}

// Source yields one season's table.
type Source interface {
	Load(ctx context.Context, year int) (*model.SeasonTable, error)
}

// Loader reads summary files from a directory.
type Loader struct {
	dir     string
	pattern string
}

// Option configures a Loader.
type Option func(*Loader)

// WithPattern overrides DefaultPattern.
func WithPattern(pattern string) Option {
	return func(l *Loader) {
		if pattern != "" {
			l.pattern = pattern
		}
	}
}

// NewLoader returns a Loader reading from dir.
func NewLoader(dir string, opts ...Option) *Loader {
	l := &Loader{dir: dir, pattern: DefaultPattern}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FileName returns the summary file name for year under pattern.
func FileName(pattern string, year int) string {
	return strings.ReplaceAll(pattern, YearToken, fmt.Sprintf("%02d", year%100))
}

// Path returns the summary file path for year.
func (l *Loader) Path(year int) string {
	return filepath.Join(l.dir, FileName(l.pattern, year))
}

// Load reads one season. Any problem with the file fails the whole season
// with a *SeasonLoadError; there is no partial-row recovery. Load does not
// log; Aggregate reports each season in request order.
func (l *Loader) Load(_ context.Context, year int) (*model.SeasonTable, error) {
	path := l.Path(year)
	fail := func(err error) error {
		return &SeasonLoadError{Year: year, Path: path, Err: err}
	}
	if year <= 0 {
		return nil, fail(fmt.Errorf("invalid season year %d", year))
	}

	frame, err := tabular.Read(path)
	if err != nil {
		return nil, fail(err)
	}
	table, err := parseSeason(frame, year)
	if err != nil {
		return nil, fail(err)
	}
	table.Path = path
	return table, nil
}

// parseSeason turns a raw frame into typed rows stamped with year.
func parseSeason(frame *tabular.Frame, year int) (*model.SeasonTable, error) {
	var missing []string
	for _, c := range requiredColumns {
		if frame.Index(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	confCol := ""
	for _, c := range conferenceColumns {
		if frame.Index(c) >= 0 {
			confCol = c
			break
		}
	}

	columns := append([]string(nil), frame.Columns...)
	if frame.Index(model.ColSeason) < 0 {
		columns = append(columns, model.ColSeason)
	}

	table := &model.SeasonTable{
		Season:  year,
		Columns: columns,
		Rows:    make([]model.TeamSeason, 0, len(frame.Rows)),
	}
	for i, row := range frame.Rows {
		cells := make(map[string]string, len(frame.Columns))
		for c, name := range frame.Columns {
			cells[name] = row[c]
		}
		ts, err := parseRow(cells, confCol)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		ts.Season = year
		table.Rows = append(table.Rows, ts)
	}
	return table, nil
}

func parseRow(cells map[string]string, confCol string) (model.TeamSeason, error) {
	ts := model.TeamSeason{
		TeamName: cells[model.ColTeamName],
		SeedRaw:  cells[model.ColSeed],
		Cells:    cells,
	}
	if strings.TrimSpace(ts.TeamName) == "" {
		return ts, errors.New("blank TeamName")
	}
	if confCol != "" {
		ts.Conference = cells[confCol]
	}

	numeric := []struct {
		col string
		dst *float64
	}{
		{model.ColAdjOE, &ts.AdjOE},
		{model.ColAdjDE, &ts.AdjDE},
		{model.ColAdjTempo, &ts.AdjTempo},
		{model.ColRankAdjOE, &ts.RankAdjOE},
		{model.ColRankAdjDE, &ts.RankAdjDE},
		{model.ColRankAdjTempo, &ts.RankAdjTempo},
	}
	for _, n := range numeric {
		raw := strings.TrimSpace(cells[n.col])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return ts, fmt.Errorf("column %s: invalid number %q", n.col, cells[n.col])
		}
		*n.dst = v
	}
	return ts, nil
}
