package season

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrSeasonLoad marks a single season that could not be loaded. The
	// aggregator skips such seasons.
	ErrSeasonLoad = errors.New("season load failed")

	// ErrNoSeasonsLoaded means none of the requested seasons loaded.
	ErrNoSeasonsLoaded = errors.New("no seasons loaded")
)

// SeasonLoadError reports why one season's summary file was rejected.
type SeasonLoadError struct {
	Year int
	Path string
	Err  error
}

func (e *SeasonLoadError) Error() string {
	return fmt.Sprintf("load season %d from %s: %v", e.Year, e.Path, e.Err)
}

func (e *SeasonLoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrSeasonLoad) match any SeasonLoadError.
func (e *SeasonLoadError) Is(target error) bool { return target == ErrSeasonLoad }
