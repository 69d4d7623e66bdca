package diaglog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// DefaultLogFile is the log file name used when a profile names none.
const DefaultLogFile = "xml-comparison.log"

// FileSink writes entries as slog text records (level DEBUG) to a file:
//
//	time=2026-10-16T09:12:01.000Z level=DEBUG msg="children length differs: 2 != 1" kind=child_count path=/a depth=0 ref=2 comp=1
//
// The file is truncated on open, so one file holds one session.
type FileSink struct {
	f      *os.File
	bw     *bufio.Writer
	h      slog.Handler
	closed bool
}

// OpenFile creates (or truncates) path and returns a FileSink on it.
func OpenFile(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("diaglog: open log file: %w", err)
	}
	bw := bufio.NewWriter(f)

	return &FileSink{
		f:  f,
		bw: bw,
		h:  slog.NewTextHandler(bw, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}, nil
}

// FileOpener returns an Opener producing a FileSink on path.
func FileOpener(path string) Opener {
	return func() (Sink, error) {
		s, err := OpenFile(path)
		if err != nil {
			return nil, err
		}

		return s, nil
	}
}

// Path returns the file name backing the sink.
func (s *FileSink) Path() string {
	return s.f.Name()
}

func (s *FileSink) Write(e Entry) error {
	if s.closed {
		return ErrSinkClosed
	}
	r := slog.NewRecord(time.Now(), slog.LevelDebug, e.Message, 0)
	r.AddAttrs(
		slog.String("kind", string(e.Kind)),
		slog.String("path", e.Path),
		slog.Int("depth", e.Depth),
	)
	if e.Attr != "" {
		r.AddAttrs(slog.String("attr", e.Attr))
	}
	if e.Ref != "" || e.Comp != "" {
		r.AddAttrs(slog.String("ref", e.Ref), slog.String("comp", e.Comp))
	}

	return s.h.Handle(context.Background(), r)
}

// Close flushes buffered records and closes the file.
func (s *FileSink) Close() error {
	if s.closed {
		return ErrSinkClosed
	}
	s.closed = true

	return errors.Join(s.bw.Flush(), s.f.Close())
}
