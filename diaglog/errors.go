package diaglog

import "errors"

var (
	// ErrSinkClosed is returned when writing to a sink after Close.
	ErrSinkClosed = errors.New("diaglog: sink is closed")

	// ErrNilOpener is returned by Run when no Opener is given.
	ErrNilOpener = errors.New("diaglog: opener is nil")
)
