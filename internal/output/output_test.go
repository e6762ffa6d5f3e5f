package output

import (
	"strings"
	"testing"

	"github.com/benorrin/uptime-checker/internal/model"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		format   model.OutputFormat
		csvPath  string
		jsonPath string
		wantErr  string
		check    func(t *testing.T, w Writer)
	}{
		{
			name:    "csv",
			format:  model.FormatCSV,
			csvPath: "a.csv",
			check: func(t *testing.T, w Writer) {
				cw, ok := w.(*CSVWriter)
				if !ok {
					t.Fatalf("writer = %T, want *CSVWriter", w)
				}
				if cw.Path() != "a.csv" {
					t.Errorf("Path() = %q, want a.csv", cw.Path())
				}
			},
		},
		{
			name:     "json",
			format:   model.FormatJSON,
			jsonPath: "a.json",
			check: func(t *testing.T, w Writer) {
				jw, ok := w.(*JSONWriter)
				if !ok {
					t.Fatalf("writer = %T, want *JSONWriter", w)
				}
				if jw.Path() != "a.json" {
					t.Errorf("Path() = %q, want a.json", jw.Path())
				}
			},
		},
		{
			name:     "csv without path",
			format:   model.FormatCSV,
			jsonPath: "a.json",
			wantErr:  "requires a file path",
		},
		{
			name:    "unknown format",
			format:  model.OutputFormat("xml"),
			wantErr: "unknown output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(tt.format, tt.csvPath, tt.jsonPath)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("New() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			tt.check(t, w)
		})
	}
}
