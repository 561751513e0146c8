package script

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoRule is returned when a script does not define the rule function.
	ErrNoRule = errors.New("script does not define " + RuleFunc)
)
