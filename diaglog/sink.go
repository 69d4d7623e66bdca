package diaglog

import (
	"errors"
	"fmt"
)

// Sink receives diagnostic entries. Write may buffer; Close flushes and
// releases the underlying resource. Close must be called exactly once.
type Sink interface {
	Write(Entry) error
	Close() error
}

// Opener acquires a fresh Sink for one session.
type Opener func() (Sink, error)

// Run opens a sink, passes it to fn and closes it on every exit path,
// including a panic in fn (the panic is re-raised after Close).
//
// Error precedence: an open failure is returned as is; otherwise fn's error
// wins, joined with the close error when both fail; a lone close error is
// returned so a failed flush never goes unnoticed.
func Run(open Opener, fn func(Sink) error) (err error) {
	if open == nil {
		return ErrNilOpener
	}
	sink, err := open()
	if err != nil {
		return fmt.Errorf("diaglog: open sink: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			cerr = fmt.Errorf("diaglog: close sink: %w", cerr)
			if err == nil {
				err = cerr
			} else {
				err = errors.Join(err, cerr)
			}
		}
	}()

	return fn(sink)
}

// Static returns an Opener that always yields s. Useful when the caller
// already owns the resource; Run will still close it.
func Static(s Sink) Opener {
	return func() (Sink, error) { return s, nil }
}

type tee []Sink

// Tee fans every entry out to all sinks in order. Write stops at the first
// failing sink; Close closes every sink and joins their errors.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

func (t tee) Write(e Entry) error {
	for _, s := range t {
		if err := s.Write(e); err != nil {
			return err
		}
	}

	return nil
}

func (t tee) Close() error {
	var errs []error
	for _, s := range t {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type discard struct{}

// Discard is a Sink that drops every entry.
var Discard Sink = discard{}

func (discard) Write(Entry) error { return nil }
func (discard) Close() error      { return nil }
