// Package output persists batches of check results to append-only files.
//
// Two formats are supported:
//
//   - [CSVWriter]: one row per result, with a header row on a fresh file
//   - [JSONWriter]: newline-delimited JSON, one object per result
//
// Every call to WriteBatch opens the file in append mode, writes the whole
// batch and closes it again. No file handle is held between calls.
package output

import (
	"fmt"
	"os"

	"github.com/benorrin/uptime-checker/internal/model"
)

const fileMode = 0o644

// Writer appends a batch of check results to persistent storage.
type Writer interface {
	WriteBatch(batch []model.CheckResult) error
}

// WriteError reports a failure to open, write or close an output file.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// New returns the writer for the given format.
// Only the path belonging to the selected format is used.
func New(format model.OutputFormat, csvPath, jsonPath string) (Writer, error) {
	switch format {
	case model.FormatCSV:
		if csvPath == "" {
			return nil, fmt.Errorf("csv output requires a file path")
		}
		return NewCSVWriter(csvPath), nil
	case model.FormatJSON:
		if jsonPath == "" {
			return nil, fmt.Errorf("json output requires a file path")
		}
		return NewJSONWriter(jsonPath), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, &WriteError{Path: path, Op: "open", Err: err}
	}
	return f, nil
}
