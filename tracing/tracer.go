// Package tracing writes generated traces to sinks such as standard output,
// CSV files, and SQLite recordings.
package tracing

import (
	"github.com/rs/xid"
	"github.com/sarchlab/memtrace/trace"
)

// A Record is one generated trace together with the parameters that produced
// it.
type Record struct {
	ID      string
	Pattern trace.Pattern
	Config  trace.Config
	Trace   trace.Trace
}

// NewRecord creates a record with a fresh unique ID.
func NewRecord(p trace.Pattern, c trace.Config, t trace.Trace) Record {
	return Record{
		ID:      xid.New().String(),
		Pattern: p,
		Config:  c,
		Trace:   t,
	}
}

// A TraceWriter is a sink that traces can be written to.
type TraceWriter interface {
	// Write appends a trace to the sink. The sink may buffer it.
	Write(r Record) error

	// Flush pushes buffered traces to the underlying storage.
	Flush() error

	// Close flushes and releases the sink.
	Close() error
}
