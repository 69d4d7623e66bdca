// Package diaglog is the diagnostic side channel of a comparison: a stream
// of field-level mismatch Entries written to a Sink.
//
// A Sink is a scoped resource. Run acquires one through an Opener, hands it
// to a function, and always closes it (success, mismatch, error or panic),
// so buffered output is flushed and files or databases are released before
// the session ends. Sessions never share a sink; independent sessions may
// run concurrently without locking.
//
// Sinks:
//
//	FileSink    - slog text records in a log file (xml-comparison.log style)
//	WriterSink  - one "path: message" line per entry on any io.Writer
//	MemorySink  - entries kept in memory, for tests and reports
//	SQLiteSink  - one row per entry in a SQLite table, keyed by session ID
//	Tee         - fan-out to several sinks
//	Discard     - drops everything
package diaglog
