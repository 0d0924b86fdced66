package report

import "github.com/the5hc/fitscore/internal/ruleset"

// Interpretation band labels. The same banding applies to physical and
// MCQ percentage scores so report semantics stay consistent across both
// domains.
const (
	BandExcellent        = "excellent"
	BandGood             = "good"
	BandAverage          = "average"
	BandNeedsImprovement = "needs improvement"
)

// Band labels a 0-100 percentage score using the ruleset's band minima.
func Band(pct float64, i ruleset.Interpretation) string {
	switch {
	case pct >= i.Excellent:
		return BandExcellent
	case pct >= i.Good:
		return BandGood
	case pct >= i.Average:
		return BandAverage
	default:
		return BandNeedsImprovement
	}
}
