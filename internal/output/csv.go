package output

import (
	"encoding/csv"
	"strconv"

	"go.uber.org/multierr"

	"github.com/benorrin/uptime-checker/internal/model"
)

// csvHeader is written once, when the file is empty.
var csvHeader = []string{"url", "status", "http_status_code", "last_ping_time"}

// CSVWriter appends check results to a CSV file.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a [CSVWriter] for the file at path.
// The file is created on the first write if it does not exist.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Path returns the output file path.
func (w *CSVWriter) Path() string {
	return w.path
}

// WriteBatch appends one row per result in batch order.
func (w *CSVWriter) WriteBatch(batch []model.CheckResult) (err error) {
	if len(batch) == 0 {
		return nil
	}

	f, err := openAppend(w.path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, &WriteError{Path: w.path, Op: "close", Err: cerr})
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return &WriteError{Path: w.path, Op: "stat", Err: err}
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(csvHeader); err != nil {
			return &WriteError{Path: w.path, Op: "write", Err: err}
		}
	}
	for _, r := range batch {
		if err := cw.Write(csvRecord(r)); err != nil {
			return &WriteError{Path: w.path, Op: "write", Err: err}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return &WriteError{Path: w.path, Op: "write", Err: err}
	}
	return nil
}

func csvRecord(r model.CheckResult) []string {
	return []string{
		r.URL,
		r.Status.String(),
		strconv.FormatUint(uint64(r.HTTPStatusCode), 10),
		strconv.FormatUint(r.LastPingTime, 10),
	}
}
