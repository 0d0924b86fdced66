package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/the5hc/fitscore/internal/report"
)

// JSONFormatter formats a score report as JSON
type JSONFormatter struct {
	indent     bool
	outputFile string
}

// NewJSONFormatter creates a new JSONFormatter
func NewJSONFormatter(indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		indent:     indent,
		outputFile: outputFile,
	}
}

// JSONHeader identifies the producing tool in report files.
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONReport is the on-disk report envelope.
type JSONReport struct {
	Header JSONHeader     `json:"header"`
	Report *report.Report `json:"report"`
}

// Format writes the report as JSON to the output file, or stdout when no
// file is configured.
func (f *JSONFormatter) Format(r *report.Report) error {
	envelope := JSONReport{
		Header: JSONHeader{
			Tool:      "fitscore",
			Version:   "1.0.0",
			Timestamp: time.Now().Format(time.RFC3339),
		},
		Report: r,
	}

	var data []byte
	var err error
	if f.indent {
		data, err = json.MarshalIndent(envelope, "", "  ")
	} else {
		data, err = json.Marshal(envelope)
	}
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}
	data = append(data, '\n')

	if f.outputFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(f.outputFile, data, 0644); err != nil {
		return fmt.Errorf("error writing report file: %w", err)
	}
	return nil
}
