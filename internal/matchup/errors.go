package matchup

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	// ErrAmbiguousTeamJoin matches any *AmbiguousTeamJoinError.
	ErrAmbiguousTeamJoin = errors.New("ambiguous team join")

	// ErrNoMatchupsGenerated means no season produced a single pair.
	ErrNoMatchupsGenerated = errors.New("no matchups generated")
)

// AmbiguousTeamJoinError reports a tournament team that appears more than
// once in the same season, so its features cannot be joined to a pair.
type AmbiguousTeamJoinError struct {
	Season  int
	Team    string
	Matches int
}

func (e *AmbiguousTeamJoinError) Error() string {
	return fmt.Sprintf("season %d: tournament team %q matches %d feature rows, want 1", e.Season, e.Team, e.Matches)
}

// Is lets errors.Is(err, ErrAmbiguousTeamJoin) match.
func (e *AmbiguousTeamJoinError) Is(target error) bool { return target == ErrAmbiguousTeamJoin }
