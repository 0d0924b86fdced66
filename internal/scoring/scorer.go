// Package scoring implements the physical test scorer: raw measurements
// for the seven tests are mapped through ruleset threshold tables into
// ordinal per-test scores, then aggregated into four weighted category
// scores and one overall score. Every function is a pure function of the
// assessment and the ruleset; inputs are never mutated.
package scoring

import (
	"github.com/the5hc/fitscore/internal/assessment"
	"github.com/the5hc/fitscore/internal/ruleset"
)

// CategoryResult is one physical category's aggregated score. Points and
// Percent are nil when none of the category's tests have data.
type CategoryResult struct {
	Name    string   `json:"name"`
	Weight  float64  `json:"weight"`
	Points  *float64 `json:"points,omitempty"`
	Max     float64  `json:"max_points"`
	Percent *float64 `json:"percent,omitempty"`
}

// Result is the physical scorer's output for one assessment.
type Result struct {
	Tests      map[assessment.TestID]assessment.TestScore
	TestMax    map[assessment.TestID]float64
	Categories []CategoryResult
	Overall    *float64 // 0-100, nil when no category has data
	PFI        *float64 // Harvard step test fitness index, when computed
	Notes      []string // compensation flags worth surfacing on reports
}

// TestScoreValue returns a test's score and presence.
func (r *Result) TestScoreValue(t assessment.TestID) (float64, bool) {
	return r.Tests[t].Value()
}

// Category returns the named category result, if present.
func (r *Result) Category(name string) (*CategoryResult, bool) {
	for i := range r.Categories {
		if r.Categories[i].Name == name {
			return &r.Categories[i], true
		}
	}
	return nil, false
}

// Score computes per-test, category, and overall scores for one
// assessment. The assessment must already be validated. Tests without
// raw data yield missing scores and are excluded from their category's
// weighted average; a trainer override takes precedence over computation
// for its test.
func Score(a *assessment.Assessment, rs *ruleset.Ruleset) (*Result, error) {
	res := &Result{
		Tests:   make(map[assessment.TestID]assessment.TestScore, len(assessment.AllTests)),
		TestMax: testMaxes(rs),
	}

	for _, test := range assessment.AllTests {
		score, err := scoreTest(a, test, rs, res)
		if err != nil {
			return nil, err
		}
		if v, ok := a.Override(test); ok {
			// Trainer intent wins verbatim; the computed value is discarded
			// until the caller clears the override.
			score = assessment.Overridden(v)
		}
		res.Tests[test] = score
	}

	aggregate(res, rs)
	return res, nil
}

func scoreTest(a *assessment.Assessment, test assessment.TestID, rs *ruleset.Ruleset, res *Result) (assessment.TestScore, error) {
	if !a.HasMeasurement(test) {
		return assessment.Missing(), nil
	}
	switch test {
	case assessment.TestOverheadSquat:
		return scoreOverheadSquat(a.OverheadSquat, rs), nil
	case assessment.TestPushUp:
		return scorePushUp(a.PushUp, a.Client, rs)
	case assessment.TestSingleLegBalance:
		return scoreBalance(a.SingleLegBalance, rs), nil
	case assessment.TestToeTouch:
		return scoreToeTouch(a.ToeTouch, rs)
	case assessment.TestShoulderMobility:
		return scoreShoulder(a.ShoulderMobility, rs, res), nil
	case assessment.TestFarmersCarry:
		return scoreCarry(a.FarmersCarry, a.Environment, rs), nil
	case assessment.TestStepTest:
		return scoreStepTest(a.StepTest, rs, res), nil
	}
	return assessment.Missing(), nil
}

func testMaxes(rs *ruleset.Ruleset) map[assessment.TestID]float64 {
	return map[assessment.TestID]float64{
		assessment.TestOverheadSquat:    rs.OverheadSquat.Max,
		assessment.TestPushUp:           rs.Tables.PushUp.Max,
		assessment.TestSingleLegBalance: rs.Tables.BalanceOpen.Max,
		assessment.TestToeTouch:         rs.Tables.ToeTouch.Max,
		assessment.TestShoulderMobility: rs.Tables.Shoulder.Max,
		assessment.TestFarmersCarry:     rs.Tables.CarryDistance.Max,
		assessment.TestStepTest:         rs.Tables.PFI.Max,
	}
}
