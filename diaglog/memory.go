package diaglog

import "sync"

// MemorySink keeps entries in memory. It is safe for concurrent use.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
	closed  bool
}

// NewMemorySink returns an empty, open MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write appends e, or fails with ErrSinkClosed after Close.
func (m *MemorySink) Write(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrSinkClosed
	}
	m.entries = append(m.entries, e)

	return nil
}

// Close marks the sink closed. Entries remain readable.
func (m *MemorySink) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	return nil
}

// Closed reports whether Close has been called.
func (m *MemorySink) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}

// Entries returns a copy of the recorded entries.
func (m *MemorySink) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Entry(nil), m.entries...)
}

// Lines returns Entry.String for every recorded entry.
func (m *MemorySink) Lines() []string {
	entries := m.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}

	return lines
}
