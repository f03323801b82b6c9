package tracing

// MultiTraceWriter writes every trace to all of its writers, in order.
type MultiTraceWriter struct {
	writers []TraceWriter
}

// NewMultiTraceWriter creates a MultiTraceWriter.
func NewMultiTraceWriter(writers ...TraceWriter) *MultiTraceWriter {
	return &MultiTraceWriter{writers: writers}
}

// Add appends a writer.
func (m *MultiTraceWriter) Add(w TraceWriter) {
	m.writers = append(m.writers, w)
}

// Write writes the record to each writer and stops at the first error.
func (m *MultiTraceWriter) Write(r Record) error {
	for _, w := range m.writers {
		if err := w.Write(r); err != nil {
			return err
		}
	}

	return nil
}

// Flush flushes each writer and stops at the first error.
func (m *MultiTraceWriter) Flush() error {
	for _, w := range m.writers {
		if err := w.Flush(); err != nil {
			return err
		}
	}

	return nil
}

// Close closes every writer, even if some fail, and returns the first error.
func (m *MultiTraceWriter) Close() error {
	var firstErr error

	for _, w := range m.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
