// Package report assembles the physical and MCQ scoring results into the
// report-ready structure consumed by the output formatters: category
// points and percentages, interpretation band labels, risk factors, and
// the blended comprehensive score.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/the5hc/fitscore/internal/assessment"
	"github.com/the5hc/fitscore/internal/mcq"
	"github.com/the5hc/fitscore/internal/ruleset"
	"github.com/the5hc/fitscore/internal/scoring"
)

// TestEntry is one physical test's line on the report. Score is nil when
// the test was skipped.
type TestEntry struct {
	Test       string   `json:"test"`
	Score      *float64 `json:"score,omitempty"`
	Max        float64  `json:"max"`
	Overridden bool     `json:"overridden,omitempty"`
}

// CategoryEntry is one category's line: physical categories carry points
// out of the ruleset maximum, MCQ categories carry percentages only.
type CategoryEntry struct {
	Name      string   `json:"name"`
	Weight    float64  `json:"weight"`
	Points    *float64 `json:"points,omitempty"`
	MaxPoints float64  `json:"max_points,omitempty"`
	Percent   *float64 `json:"percent,omitempty"`
	Band      string   `json:"band,omitempty"`
}

// Report is the complete scored assessment.
type Report struct {
	ClientID  string `json:"client_id,omitempty"`
	TrainerID string `json:"trainer_id,omitempty"`
	Date      string `json:"date,omitempty"`

	Tests    []TestEntry     `json:"tests"`
	Physical []CategoryEntry `json:"physical_categories"`
	Overall  *float64        `json:"overall,omitempty"`
	Band     string          `json:"band,omitempty"`
	PFI      *float64        `json:"pfi,omitempty"`
	Notes    []string        `json:"notes,omitempty"`

	MCQ       []CategoryEntry  `json:"mcq_categories,omitempty"`
	Risks     []mcq.RiskFactor `json:"risks,omitempty"`
	MCQAbsent bool             `json:"mcq_absent"`

	Comprehensive     *float64 `json:"comprehensive,omitempty"`
	ComprehensiveBand string   `json:"comprehensive_band,omitempty"`
}

// Build assembles the final report from the two engines' results.
// mcqResult may be nil when no response set was supplied.
func Build(a *assessment.Assessment, phys *scoring.Result, mcqResult *mcq.Result, rs *ruleset.Ruleset) *Report {
	r := &Report{
		Tests:    make([]TestEntry, 0, len(assessment.AllTests)),
		Physical: make([]CategoryEntry, 0, len(phys.Categories)),
		Overall:  phys.Overall,
		PFI:      phys.PFI,
		Notes:    phys.Notes,
	}

	if a.ClientID != uuid.Nil {
		r.ClientID = a.ClientID.String()
	}
	if a.TrainerID != uuid.Nil {
		r.TrainerID = a.TrainerID.String()
	}
	if !a.Date.IsZero() {
		r.Date = a.Date.Format(time.DateOnly)
	}

	for _, test := range assessment.AllTests {
		ts := phys.Tests[test]
		entry := TestEntry{
			Test:       string(test),
			Max:        phys.TestMax[test],
			Overridden: ts.IsOverridden(),
		}
		if v, ok := ts.Value(); ok {
			score := v
			entry.Score = &score
		}
		r.Tests = append(r.Tests, entry)
	}

	for _, cat := range phys.Categories {
		entry := CategoryEntry{
			Name:      cat.Name,
			Weight:    cat.Weight,
			Points:    cat.Points,
			MaxPoints: cat.Max,
			Percent:   cat.Percent,
		}
		if cat.Percent != nil {
			entry.Band = Band(*cat.Percent, rs.Interpretation)
		}
		r.Physical = append(r.Physical, entry)
	}
	if phys.Overall != nil {
		r.Band = Band(*phys.Overall, rs.Interpretation)
	}

	if mcqResult != nil {
		for _, cs := range mcqResult.Categories {
			entry := CategoryEntry{
				Name:    cs.Name,
				Weight:  cs.Weight,
				Percent: cs.Percent,
			}
			if cs.Percent != nil {
				entry.Band = Band(*cs.Percent, rs.Interpretation)
			}
			r.MCQ = append(r.MCQ, entry)
		}
		r.Risks = mcqResult.Risks
	}

	r.Comprehensive, r.MCQAbsent = Comprehensive(phys.Overall, mcqResult)
	if r.Comprehensive != nil {
		r.ComprehensiveBand = Band(*r.Comprehensive, rs.Interpretation)
	}
	return r
}
