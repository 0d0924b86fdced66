package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/the5hc/fitscore/internal/report"
)

func sampleReport() *report.Report {
	overall := 82.5
	comp := 84.0
	score := 3.0
	return &report.Report{
		Date: "2026-03-14",
		Tests: []report.TestEntry{
			{Test: "push_up", Score: &score, Max: 4},
			{Test: "step_test", Max: 4},
		},
		Physical: []report.CategoryEntry{
			{Name: "strength", Weight: 0.3, Points: &score, MaxPoints: 25, Percent: &overall, Band: report.BandGood},
		},
		Overall:       &overall,
		Band:          report.BandGood,
		MCQAbsent:     true,
		Comprehensive: &comp,
	}
}

func TestJSONFormatterWritesEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	f := NewJSONFormatter(true, path)
	if err := f.Format(sampleReport()); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var envelope JSONReport
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("report file is not valid JSON: %v", err)
	}

	if envelope.Header.Tool != "fitscore" {
		t.Errorf("header tool = %q, want fitscore", envelope.Header.Tool)
	}
	if envelope.Header.Version == "" || envelope.Header.Timestamp == "" {
		t.Error("header version or timestamp missing")
	}
	if envelope.Report == nil || envelope.Report.Overall == nil || *envelope.Report.Overall != 82.5 {
		t.Errorf("report payload mangled: %+v", envelope.Report)
	}
	if len(envelope.Report.Tests) != 2 {
		t.Errorf("got %d test entries, want 2", len(envelope.Report.Tests))
	}
	if envelope.Report.Tests[1].Score != nil {
		t.Error("skipped test should serialize with no score")
	}
}

func TestJSONFormatterCompact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := NewJSONFormatter(false, path).Format(sampleReport()); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var envelope JSONReport
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("compact output is not valid JSON: %v", err)
	}
}
