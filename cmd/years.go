package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pable/go-mm-features/internal/season"
)

// parseYears expands "2015-2019,2021" into a year list in the given order,
// then drops every year in exclude. Repeated years keep their first position.
func parseYears(list string, exclude []int) ([]int, error) {
	drop := make(map[int]bool, len(exclude))
	for _, y := range exclude {
		drop[y] = true
	}

	seen := make(map[int]bool)
	var years []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var span []int
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := parseYear(lo)
			if err != nil {
				return nil, err
			}
			end, err := parseYear(hi)
			if err != nil {
				return nil, err
			}
			if end < start {
				return nil, fmt.Errorf("year range %q runs backwards", part)
			}
			span = season.Range(start, end)
		} else {
			y, err := parseYear(part)
			if err != nil {
				return nil, err
			}
			span = []int{y}
		}
		for _, y := range span {
			if drop[y] || seen[y] {
				continue
			}
			seen[y] = true
			years = append(years, y)
		}
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no seasons selected by %q", list)
	}
	return years, nil
}

func parseYear(s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < 1000 || y > 9999 {
		return 0, fmt.Errorf("invalid season year %q", s)
	}
	return y, nil
}
