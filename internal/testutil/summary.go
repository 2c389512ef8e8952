// Package testutil builds season summary fixtures for tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pable/go-mm-features/internal/model"
)

// Team is one fixture row of a season summary file.
type Team struct {
	Name      string
	Conf      string
	AdjOE     float64
	AdjDE     float64
	AdjTempo  float64
	RankOE    int
	RankDE    int
	RankTempo int
	Seed      string
}

// SummaryHeader is the header written by WriteSummary.
var SummaryHeader = []string{
	"TeamName", "Conference", "AdjOE", "AdjDE", "AdjTempo",
	"RankAdjOE", "RankAdjDE", "RankAdjTempo", "seed",
}

// SummaryCSV renders teams as a summary file body.
func SummaryCSV(teams []Team) string {
	var b strings.Builder
	b.WriteString(strings.Join(SummaryHeader, ","))
	b.WriteByte('\n')
	for _, t := range teams {
		b.WriteString(strings.Join([]string{
			t.Name, t.Conf,
			model.FormatFloat(t.AdjOE), model.FormatFloat(t.AdjDE), model.FormatFloat(t.AdjTempo),
			strconv.Itoa(t.RankOE), strconv.Itoa(t.RankDE), strconv.Itoa(t.RankTempo),
			t.Seed,
		}, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteSummary writes summary<yy>_pt.csv for year into dir.
func WriteSummary(t *testing.T, dir string, year int, teams []Team) string {
	t.Helper()
	return WriteFile(t, dir, fmt.Sprintf("summary%02d_pt.csv", year%100), SummaryCSV(teams))
}

// WriteFile writes body to dir/name.
func WriteFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Seeded returns n tournament teams named prefix1..prefixN with seeds 1..n.
func Seeded(prefix string, n int) []Team {
	teams := make([]Team, n)
	for i := range teams {
		teams[i] = Team{
			Name:      prefix + strconv.Itoa(i+1),
			Conf:      "C" + strconv.Itoa(i%3),
			AdjOE:     100 + float64(i),
			AdjDE:     95 - float64(i)/2,
			AdjTempo:  64 + float64(i%5),
			RankOE:    i + 1,
			RankDE:    i + 2,
			RankTempo: 100 + i,
			Seed:      strconv.Itoa(i + 1),
		}
	}
	return teams
}

// Unseeded returns n non-tournament teams.
func Unseeded(prefix string, n int) []Team {
	teams := Seeded(prefix, n)
	for i := range teams {
		teams[i].Seed = ""
	}
	return teams
}

// TeamSeasons converts fixture teams to loaded rows for season.
func TeamSeasons(season int, teams []Team) []model.TeamSeason {
	rows := make([]model.TeamSeason, len(teams))
	for i, t := range teams {
		rows[i] = model.TeamSeason{
			TeamName:     t.Name,
			Conference:   t.Conf,
			AdjOE:        t.AdjOE,
			AdjDE:        t.AdjDE,
			AdjTempo:     t.AdjTempo,
			RankAdjOE:    float64(t.RankOE),
			RankAdjDE:    float64(t.RankDE),
			RankAdjTempo: float64(t.RankTempo),
			SeedRaw:      t.Seed,
			Season:       season,
			Cells:        map[string]string{"TeamName": t.Name, "seed": t.Seed},
		}
	}
	return rows
}
