package output

import (
	"bytes"
	"encoding/json"

	"go.uber.org/multierr"

	"github.com/benorrin/uptime-checker/internal/model"
)

// JSONWriter appends check results to a newline-delimited JSON file.
//
// Each result is encoded as a single JSON object on its own line, so the
// file stays parseable no matter how many batches have been appended.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a [JSONWriter] for the file at path.
// The file is created on the first write if it does not exist.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Path returns the output file path.
func (w *JSONWriter) Path() string {
	return w.path
}

// WriteBatch appends one line per result in batch order.
//
// The batch is encoded in memory first and written with a single call so a
// failed encode never leaves a partial line behind.
func (w *JSONWriter) WriteBatch(batch []model.CheckResult) (err error) {
	if len(batch) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range batch {
		if err := enc.Encode(r); err != nil {
			return &WriteError{Path: w.path, Op: "encode", Err: err}
		}
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

	if _, err := f.Write(buf.Bytes()); err != nil {
		return &WriteError{Path: w.path, Op: "write", Err: err}
	}
	return nil
}
