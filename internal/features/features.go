// Package features derives the per-team engineered columns from an
// aggregated multi-season table.
package features

import (
	"fmt"

	"github.com/pable/go-mm-features/internal/model"
)

// Build derives one Feature per input row, in input order.
//
// The tempo adjustment divides by the mean AdjTempo of every row passed in,
// across all seasons of the run, not per season. Changing the requested
// years therefore shifts TempoAdjOffEff and TempoAdjDefEff for every team.
func Build(agg *model.Aggregate) (*model.FeatureTable, error) {
	if agg == nil || len(agg.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidFeatureInput)
	}

	meanTempo := MeanTempo(agg.Rows)
	if meanTempo == 0 {
		return nil, fmt.Errorf("%w: mean AdjTempo is zero over %d rows", ErrInvalidFeatureInput, len(agg.Rows))
	}

	out := &model.FeatureTable{
		Columns: agg.Columns,
		Rows:    make([]model.Feature, len(agg.Rows)),
	}
	for i, ts := range agg.Rows {
		tempoFactor := ts.AdjTempo / meanTempo
		seed := model.ParseOptFloat(ts.SeedRaw)
		out.Rows[i] = model.Feature{
			TeamSeason:       ts,
			EfficiencyDiff:   ts.AdjOE - ts.AdjDE,
			TempoAdjOffEff:   ts.AdjOE * tempoFactor,
			TempoAdjDefEff:   ts.AdjDE * tempoFactor,
			OverallRankScore: (ts.RankAdjOE + ts.RankAdjDE + ts.RankAdjTempo) / 3,
			Seed:             seed,
			IsTourney:        seed.Valid,
		}
	}
	return out, nil
}

// MeanTempo is the arithmetic mean AdjTempo of rows; zero for no rows.
func MeanTempo(rows []model.TeamSeason) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		sum += r.AdjTempo
	}
	return sum / float64(len(rows))
}
