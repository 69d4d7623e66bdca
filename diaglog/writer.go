package diaglog

import (
	"bufio"
	"io"
)

// WriterSink writes one "path: message" line per entry to an io.Writer.
// Output is buffered; Close flushes and, when the writer is an io.Closer
// that the sink owns, closes it.
type WriterSink struct {
	bw     *bufio.Writer
	owned  io.Closer
	closed bool
}

// NewWriterSink wraps w without taking ownership (stderr, buffers).
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{bw: bufio.NewWriter(w)}
}

// NewOwnedWriterSink wraps wc and closes it on Close.
func NewOwnedWriterSink(wc io.WriteCloser) *WriterSink {
	return &WriterSink{bw: bufio.NewWriter(wc), owned: wc}
}

func (s *WriterSink) Write(e Entry) error {
	if s.closed {
		return ErrSinkClosed
	}
	if _, err := s.bw.WriteString(e.String()); err != nil {
		return err
	}

	return s.bw.WriteByte('\n')
}

func (s *WriterSink) Close() error {
	if s.closed {
		return ErrSinkClosed
	}
	s.closed = true
	err := s.bw.Flush()
	if s.owned != nil {
		if cerr := s.owned.Close(); err == nil {
			err = cerr
		}
	}

	return err
}
