package tracing

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

type csvRow struct {
	traceID string
	index   int
	address int64
}

// CSVTraceWriter stores the addresses of traces into a CSV file, one address
// per row.
type CSVTraceWriter struct {
	path string
	file *os.File

	rows       []csvRow
	bufferSize int
}

// NewCSVTraceWriter creates a new CSVTraceWriter. The file is created by
// Init.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Path returns the name of the CSV file.
func (t *CSVTraceWriter) Path() string {
	if strings.HasSuffix(t.path, ".csv") {
		return t.path
	}

	return t.path + ".csv"
}

// Init creates the CSV file and writes the header. An empty path is replaced
// by a unique one. It is an error if the file already exists.
func (t *CSVTraceWriter) Init() error {
	if t.path == "" {
		t.path = "memtrace_" + xid.New().String()
	}

	filename := t.Path()

	_, err := os.Stat(filename)
	if err == nil {
		return fmt.Errorf("file %s already exists", filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	t.file = file

	_, err = fmt.Fprintf(file, "Trace, Index, Address\n")
	if err != nil {
		return err
	}

	atexit.Register(func() { _ = t.Close() })

	return nil
}

// Write buffers the addresses of a trace.
func (t *CSVTraceWriter) Write(r Record) error {
	for i, addr := range r.Trace {
		t.rows = append(t.rows, csvRow{
			traceID: r.ID,
			index:   i,
			address: int64(addr),
		})

		if len(t.rows) >= t.bufferSize {
			if err := t.Flush(); err != nil {
				return err
			}
		}
	}

	return nil
}

// Flush writes the buffered rows to the CSV file.
func (t *CSVTraceWriter) Flush() error {
	if t.file == nil {
		return nil
	}

	for _, row := range t.rows {
		_, err := fmt.Fprintf(t.file, "%s, %d, %d\n",
			row.traceID, row.index, row.address)
		if err != nil {
			return err
		}
	}

	t.rows = nil

	return nil
}

// Close flushes the buffered rows and closes the file.
func (t *CSVTraceWriter) Close() error {
	if t.file == nil {
		return nil
	}

	err := t.Flush()

	if closeErr := t.file.Close(); err == nil {
		err = closeErr
	}

	t.file = nil

	return err
}
