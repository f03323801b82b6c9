package tracing

import (
	"bufio"
	"io"
	"strconv"
)

// TextTraceWriter writes each trace as one line of decimal addresses
// separated by single spaces.
type TextTraceWriter struct {
	w   *bufio.Writer
	buf []byte
}

// NewTextTraceWriter creates a TextTraceWriter on top of w. Closing the writer
// flushes it but does not close w.
func NewTextTraceWriter(w io.Writer) *TextTraceWriter {
	return &TextTraceWriter{w: bufio.NewWriter(w)}
}

// Write writes the addresses of the record followed by a newline.
func (t *TextTraceWriter) Write(r Record) error {
	for i, addr := range r.Trace {
		t.buf = t.buf[:0]
		if i > 0 {
			t.buf = append(t.buf, ' ')
		}

		t.buf = strconv.AppendInt(t.buf, int64(addr), 10)

		if _, err := t.w.Write(t.buf); err != nil {
			return err
		}
	}

	return t.w.WriteByte('\n')
}

// Flush flushes the buffered output.
func (t *TextTraceWriter) Flush() error {
	return t.w.Flush()
}

// Close flushes the buffered output.
func (t *TextTraceWriter) Close() error {
	return t.Flush()
}
