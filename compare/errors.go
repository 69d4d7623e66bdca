package compare

import "errors"

// Sentinel errors for the compare package.
var (
	// ErrOptionViolation is returned when an invalid Option was supplied.
	ErrOptionViolation = errors.New("compare: invalid option supplied")

	// ErrUnknownStrategy indicates a strategy name ParseStrategy does not know.
	ErrUnknownStrategy = errors.New("compare: unknown matching strategy")

	// ErrNilSink is returned by Explain when no diagnostic sink is given.
	ErrNilSink = errors.New("compare: diagnostic sink is nil")
)
