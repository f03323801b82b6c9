package tracing

import (
	"context"
	"fmt"

	"github.com/sarchlab/memtrace/datarecording"
	"github.com/sarchlab/memtrace/trace"
)

const (
	traceTableName   = "traces"
	addressTableName = "addresses"
)

type traceTableEntry struct {
	ID       string
	Pattern  string
	Count    int
	Stride   int64
	BitWidth int
	Seed     int64
}

type addressTableEntry struct {
	TraceID string
	Idx     int
	Address int64
}

// DBTraceWriter stores traces into a database through a DataRecorder. Each
// trace gets one row in the traces table and one row per address in the
// addresses table.
type DBTraceWriter struct {
	backend datarecording.DataRecorder
}

// NewDBTraceWriter creates a DBTraceWriter and the tables it writes to.
func NewDBTraceWriter(backend datarecording.DataRecorder) *DBTraceWriter {
	backend.CreateTable(traceTableName, traceTableEntry{})
	backend.CreateTable(addressTableName, addressTableEntry{})

	return &DBTraceWriter{backend: backend}
}

// Write records the trace and its parameters.
func (t *DBTraceWriter) Write(r Record) error {
	if r.ID == "" {
		return fmt.Errorf("record must have an ID")
	}

	err := t.backend.InsertData(traceTableName, traceTableEntry{
		ID:       r.ID,
		Pattern:  r.Pattern.String(),
		Count:    len(r.Trace),
		Stride:   r.Config.Stride,
		BitWidth: r.Config.BitWidth,
		Seed:     r.Config.Seed,
	})
	if err != nil {
		return fmt.Errorf("record trace %s: %w", r.ID, err)
	}

	for i, addr := range r.Trace {
		err := t.backend.InsertData(addressTableName, addressTableEntry{
			TraceID: r.ID,
			Idx:     i,
			Address: int64(addr),
		})
		if err != nil {
			return fmt.Errorf("record trace %s: %w", r.ID, err)
		}
	}

	return nil
}

// Flush flushes the backend.
func (t *DBTraceWriter) Flush() error {
	return t.backend.Flush()
}

// Close flushes and closes the backend.
func (t *DBTraceWriter) Close() error {
	return t.backend.Close()
}

// DBTraceReader reads traces recorded by a DBTraceWriter.
type DBTraceReader struct {
	reader datarecording.DataReader
}

// NewDBTraceReader creates a DBTraceReader on top of a DataReader.
func NewDBTraceReader(reader datarecording.DataReader) *DBTraceReader {
	reader.MapTable(traceTableName, traceTableEntry{})
	reader.MapTable(addressTableName, addressTableEntry{})

	return &DBTraceReader{reader: reader}
}

// ListTraces returns the recorded traces, in recording order, without their
// addresses.
func (r *DBTraceReader) ListTraces(ctx context.Context) ([]Record, error) {
	results, _, err := r.reader.Query(ctx, traceTableName,
		datarecording.QueryParams{OrderBy: "rowid"})
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(results))

	for _, res := range results {
		record, err := entryToRecord(res.(*traceTableEntry))
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

// ReadTrace returns a recorded trace with its addresses in issue order.
func (r *DBTraceReader) ReadTrace(ctx context.Context, id string) (Record, error) {
	results, _, err := r.reader.Query(ctx, traceTableName,
		datarecording.QueryParams{Where: "ID = ?", Args: []any{id}})
	if err != nil {
		return Record{}, err
	}

	if len(results) == 0 {
		return Record{}, fmt.Errorf("trace %s not found", id)
	}

	record, err := entryToRecord(results[0].(*traceTableEntry))
	if err != nil {
		return Record{}, err
	}

	record.Trace, err = r.readAddresses(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if len(record.Trace) != record.Config.Count {
		return Record{}, fmt.Errorf("trace %s has %d addresses, expected %d",
			id, len(record.Trace), record.Config.Count)
	}

	return record, nil
}

func (r *DBTraceReader) readAddresses(
	ctx context.Context,
	id string,
) (trace.Trace, error) {
	results, _, err := r.reader.Query(ctx, addressTableName,
		datarecording.QueryParams{
			Where:   "TraceID = ?",
			Args:    []any{id},
			OrderBy: "Idx ASC",
		})
	if err != nil {
		return nil, err
	}

	t := make(trace.Trace, len(results))
	for i, res := range results {
		t[i] = trace.Address(res.(*addressTableEntry).Address)
	}

	return t, nil
}

func entryToRecord(e *traceTableEntry) (Record, error) {
	p, err := trace.ParsePattern(e.Pattern)
	if err != nil {
		return Record{}, fmt.Errorf("trace %s: %w", e.ID, err)
	}

	return Record{
		ID:      e.ID,
		Pattern: p,
		Config: trace.Config{
			Count:    e.Count,
			Stride:   e.Stride,
			BitWidth: e.BitWidth,
			Seed:     e.Seed,
		},
	}, nil
}
