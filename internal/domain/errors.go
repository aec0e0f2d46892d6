package domain

import "errors"

// Error taxonomy for the projection engine. Failures are wrapped with
// fmt.Errorf("%w: ...") so callers can test them with errors.Is.
var (
	// ErrData means the league snapshot lacks data the engine needs, such as
	// a team with no played weeks to sample scores from.
	ErrData = errors.New("data error")

	// ErrConfiguration means the league settings are unusable, for example an
	// unknown tiebreak policy or a division map that does not match the teams.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidArgument means the caller passed a bad request, such as a
	// non-positive trial count or a what-if pin for a matchup that does not exist.
	ErrInvalidArgument = errors.New("invalid argument")
)
