// Package report prints run summaries and tables to the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-mm-features/internal/pipeline"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintRunSummary prints one line per requested season plus the output paths.
func PrintRunSummary(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "\n=== Seasons ===\n\n")
	table := newTable(w)
	table.Header("SEASON", "STATUS", "TEAMS", "TOURNEY", "MATCHUPS")
	var teams, tourney, matchups int
	for _, s := range res.Seasons {
		status := "loaded"
		if !s.Loaded {
			status = "skipped"
		} else if s.TourneyTeams == 0 {
			status = "no seeds"
		}
		table.Append(
			strconv.Itoa(s.Season),
			status,
			strconv.Itoa(s.Teams),
			strconv.Itoa(s.TourneyTeams),
			strconv.Itoa(s.Matchups),
		)
		teams += s.Teams
		tourney += s.TourneyTeams
		matchups += s.Matchups
	}
	table.Footer("TOTAL", "", strconv.Itoa(teams), strconv.Itoa(tourney), strconv.Itoa(matchups))
	table.Render()

	fmt.Fprintf(w, "\n  Features : %s (%d rows)\n", res.FeaturesPath, len(res.Features.Rows))
	fmt.Fprintf(w, "  Matchups : %s (%d rows)\n", res.MatchupsPath, len(res.Matchups))
}

// PrintRecord prints a single record vertically, one column per line.
func PrintRecord(w io.Writer, title string, header, record []string) {
	fmt.Fprintf(w, "\n--- %s ---\n\n", title)
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{Alignment: tw.CellAlignment{PerColumn: []tw.Align{tw.AlignLeft, tw.AlignRight}}},
	}))
	table.Header("COLUMN", "VALUE")
	for i, col := range header {
		val := ""
		if i < len(record) {
			val = record[i]
		}
		table.Append(col, val)
	}
	table.Render()
}

// PrintRows prints a query result. Empty results print "(no rows)".
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)
	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
