package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mm-features/internal/season"
)

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List seasons with a summary file in the raw directory",
	Args:  cobra.NoArgs,
	RunE:  runSeasons,
}

func runSeasons(_ *cobra.Command, _ []string) error {
	years, err := season.Discover(cfg.RawDir, cfg.SummaryPattern)
	if err != nil {
		return fmt.Errorf("discover seasons: %w", err)
	}
	if len(years) == 0 {
		fmt.Fprintf(os.Stdout, "No files matching %s in %s.\n", cfg.SummaryPattern, cfg.RawDir)
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %s\n", "SEASON", "FILE")
	fmt.Fprintf(os.Stdout, "%-6s  %s\n", "──────", "────")
	for _, y := range years {
		fmt.Fprintf(os.Stdout, "%-6d  %s\n", y, season.FileName(cfg.SummaryPattern, y))
	}
	return nil
}
