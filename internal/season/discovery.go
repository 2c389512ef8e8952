package season

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// centuryPivot splits two-digit suffixes: below it is 20xx, at or above 19xx.
const centuryPivot = 50

// Discover lists the season years whose summary files exist in dir, ascending.
func Discover(dir, pattern string) ([]int, error) {
	if !strings.Contains(pattern, YearToken) {
		return nil, fmt.Errorf("pattern %q has no %s token", pattern, YearToken)
	}
	re, err := regexp.Compile("^" + strings.ReplaceAll(regexp.QuoteMeta(pattern), regexp.QuoteMeta(YearToken), `(\d{2})`) + "$")
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	seen := make(map[int]bool)
	var years []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		yy, _ := strconv.Atoi(m[1])
		year := 2000 + yy
		if yy >= centuryPivot {
			year = 1900 + yy
		}
		if !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years, nil
}
