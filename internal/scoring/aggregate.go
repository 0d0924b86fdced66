package scoring

import (
	"github.com/the5hc/fitscore/internal/assessment"
	"github.com/the5hc/fitscore/internal/ruleset"
)

// aggregate folds per-test scores into category and overall scores.
// Missing tests are excluded and the remaining member weights are
// renormalized, so incomplete data entry is never penalized as zero.
// Categories with no available tests report nil, and the overall score
// renormalizes across the categories that have data.
func aggregate(res *Result, rs *ruleset.Ruleset) {
	res.Categories = make([]CategoryResult, 0, len(rs.Categories))

	var overallSum, overallWeight float64
	overallAvailable := false

	for _, cat := range rs.Categories {
		cr := CategoryResult{Name: cat.Name, Weight: cat.Weight, Max: rs.CategoryPoints}

		var sum, weight float64
		for _, tw := range cat.Tests {
			score, ok := res.Tests[assessment.TestID(tw.Test)].Value()
			if !ok {
				continue
			}
			sum += tw.Weight * testFraction(score, res.TestMax[assessment.TestID(tw.Test)])
			weight += tw.Weight
		}

		if weight > 0 {
			pct := sum / weight * 100
			points := pct / 100 * rs.CategoryPoints
			cr.Percent = &pct
			cr.Points = &points

			overallSum += cat.Weight * pct
			overallWeight += cat.Weight
			overallAvailable = true
		}

		res.Categories = append(res.Categories, cr)
	}

	if overallAvailable {
		overall := overallSum / overallWeight
		res.Overall = &overall
	}
}

// testFraction normalizes an ordinal score to [0, 1]. Override values
// above the scale are clamped here so a generous trainer entry cannot
// push a category past 100%.
func testFraction(score, scaleMax float64) float64 {
	if scaleMax <= 0 {
		return 0
	}
	f := score / scaleMax
	if f > 1 {
		f = 1
	}
	if f < 0 {
		f = 0
	}
	return f
}
