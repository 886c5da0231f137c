package game

import "errors"

var (
	// ErrIllegalAction marks an action that failed a legality check. The
	// state is untouched when Apply returns it.
	ErrIllegalAction = errors.New("illegal action")

	// ErrBadConfig marks contradictory or out-of-range configuration,
	// fatal to the single game run.
	ErrBadConfig = errors.New("bad config")
)
