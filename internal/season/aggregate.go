package season

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pable/go-mm-features/internal/logger"
	"github.com/pable/go-mm-features/internal/model"
)

// maxParallelLoads bounds concurrent Source.Load calls.
const maxParallelLoads = 4

// Range returns the contiguous years start..end inclusive.
func Range(start, end int) []int {
	if end < start {
		return nil
	}
	years := make([]int, 0, end-start+1)
	for y := start; y <= end; y++ {
		years = append(years, y)
	}
	return years
}

// Aggregate loads every requested year from src and concatenates the tables
// season-major in request order. A season that fails to load is logged and
// left out; only an empty result is an error. Repeated years load once.
//
// Seasons load concurrently, so src must be safe for concurrent use. The
// result and the per-season log lines follow request order, not load
// completion order.
func Aggregate(ctx context.Context, src Source, years []int, log logger.Logger) (*model.Aggregate, error) {
	if log == nil {
		log = logger.Nop()
	}

	var distinct []int
	seenYear := make(map[int]bool, len(years))
	for _, year := range years {
		if seenYear[year] {
			log.Debug(ctx, "ignoring repeated season", logger.Int("season", year))
			continue
		}
		seenYear[year] = true
		distinct = append(distinct, year)
	}

	tables := make([]*model.SeasonTable, len(distinct))
	errs := make([]error, len(distinct))
	var g errgroup.Group
	g.SetLimit(maxParallelLoads)
	for i, year := range distinct {
		g.Go(func() error {
			tables[i], errs[i] = src.Load(ctx, year)
			return nil
		})
	}
	_ = g.Wait()

	agg := &model.Aggregate{}
	seenCol := make(map[string]bool)
	for i, year := range distinct {
		if errs[i] != nil {
			log.Warn(ctx, "skipping season", logger.Int("season", year), logger.Error(errs[i]))
			agg.Skipped = append(agg.Skipped, year)
			continue
		}
		table := tables[i]
		log.Info(ctx, "loaded season",
			logger.Int("season", year),
			logger.Int("rows", len(table.Rows)),
			logger.String("path", table.Path))
		for _, c := range table.Columns {
			if !seenCol[c] {
				seenCol[c] = true
				agg.Columns = append(agg.Columns, c)
			}
		}
		agg.Seasons = append(agg.Seasons, year)
		agg.Rows = append(agg.Rows, table.Rows...)
	}

	if len(agg.Seasons) == 0 {
		return nil, fmt.Errorf("%w: requested %v", ErrNoSeasonsLoaded, years)
	}
	return agg, nil
}
