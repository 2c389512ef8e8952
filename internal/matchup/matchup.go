// Package matchup expands each season's tournament teams into ordered
// pairwise matchup records.
package matchup

import (
	"context"
	"fmt"

	"github.com/pable/go-mm-features/internal/features"
	"github.com/pable/go-mm-features/internal/logger"
	"github.com/pable/go-mm-features/internal/model"
)

// SeasonCount summarises one season's contribution.
type SeasonCount struct {
	Season         int
	Teams          int
	TourneyTeams   int
	Matchups       int
	WithoutTourney bool
}

// Result is the generated matchups plus per-season counts in season order.
type Result struct {
	Matchups []model.Matchup
	Seasons  []SeasonCount
}

// Generate builds matchups season by season. Pairs never cross seasons.
// Within a season only tournament teams (IsTourney) take part, and every
// ordered pair of distinct teams is emitted, so N teams give N*(N-1) rows:
// (A,B) and (B,A) are both present.
func Generate(ctx context.Context, table *model.FeatureTable, log logger.Logger) (*Result, error) {
	if log == nil {
		log = logger.Nop()
	}
	if table == nil {
		return nil, ErrNoMatchupsGenerated
	}
	res := &Result{}

	// Group by season, keeping first-appearance order of seasons and rows.
	var order []int
	bySeason := make(map[int][]model.Feature)
	for _, f := range table.Rows {
		if _, ok := bySeason[f.Season]; !ok {
			order = append(order, f.Season)
		}
		bySeason[f.Season] = append(bySeason[f.Season], f)
	}

	for _, season := range order {
		rows := bySeason[season]
		matchups, count, err := generateSeason(season, rows)
		if err != nil {
			return nil, err
		}
		switch {
		case count.TourneyTeams == 0:
			log.Warn(ctx, "no tournament teams, skipping season", logger.Int("season", season))
		case count.TourneyTeams == 1:
			log.Warn(ctx, "only one tournament team, season yields no matchups", logger.Int("season", season))
		default:
			log.Debug(ctx, "generated season matchups",
				logger.Int("season", season),
				logger.Int("tourney_teams", count.TourneyTeams),
				logger.Int("matchups", count.Matchups))
		}
		res.Seasons = append(res.Seasons, count)
		res.Matchups = append(res.Matchups, matchups...)
	}

	if len(res.Matchups) == 0 {
		return nil, fmt.Errorf("%w: %d season(s) examined", ErrNoMatchupsGenerated, len(order))
	}
	return res, nil
}

// generateSeason pairs one season's tournament teams.
func generateSeason(season int, rows []model.Feature) ([]model.Matchup, SeasonCount, error) {
	count := SeasonCount{Season: season, Teams: len(rows)}

	// Tournament subset keyed by team name; team order is first appearance.
	var teams []string
	byTeam := make(map[string]model.Feature)
	matches := make(map[string]int)
	for _, f := range rows {
		if !f.IsTourney {
			continue
		}
		if matches[f.TeamName] == 0 {
			teams = append(teams, f.TeamName)
			byTeam[f.TeamName] = f
		}
		matches[f.TeamName]++
	}
	for _, team := range teams {
		if n := matches[team]; n != 1 {
			return nil, count, &AmbiguousTeamJoinError{Season: season, Team: team, Matches: n}
		}
	}

	count.TourneyTeams = len(teams)
	count.WithoutTourney = len(teams) == 0
	if len(teams) < 2 {
		return nil, count, nil
	}

	out := make([]model.Matchup, 0, len(teams)*(len(teams)-1))
	for _, t1 := range teams {
		for _, t2 := range teams {
			if t1 == t2 {
				continue
			}
			m, err := pair(season, byTeam[t1], byTeam[t2])
			if err != nil {
				return nil, count, err
			}
			out = append(out, m)
		}
	}
	count.Matchups = len(out)
	return out, count, nil
}

// pair joins both sides and derives the differential columns.
func pair(season int, side1, side2 model.Feature) (model.Matchup, error) {
	if side2.AdjTempo == 0 {
		return model.Matchup{}, fmt.Errorf("%w: season %d: %s has zero AdjTempo, TempoRatio undefined",
			features.ErrInvalidFeatureInput, season, side2.TeamName)
	}
	return model.Matchup{
		Team1:               side1.TeamName,
		Team2:               side2.TeamName,
		Season:              season,
		Side1:               side1,
		Side2:               side2,
		SeedDiff:            side1.Seed.Value - side2.Seed.Value,
		EfficiencyDiffDelta: side1.EfficiencyDiff - side2.EfficiencyDiff,
		TempoRatio:          side1.AdjTempo / side2.AdjTempo,
	}, nil
}
