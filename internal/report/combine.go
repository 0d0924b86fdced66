package report

import "github.com/the5hc/fitscore/internal/mcq"

// Comprehensive blends the physical overall score with the MCQ category
// percentages. Each MCQ category contributes its bank weight; the
// physical domain takes the remainder, which always dominates (bank
// validation keeps the MCQ sum below 0.5). Categories without data drop
// out and the remaining weights renormalize, so when MCQ data is absent
// entirely the result degrades to exactly the physical overall score.
//
// The second return value reports MCQ-absent mode so callers can adjust
// report presentation. The result is nil only when neither domain has
// any data.
func Comprehensive(physicalOverall *float64, mcqResult *mcq.Result) (*float64, bool) {
	var mcqWeightTotal float64
	type part struct {
		pct    float64
		weight float64
	}
	var parts []part

	mcqAbsent := true
	if mcqResult != nil {
		for _, cs := range mcqResult.Categories {
			mcqWeightTotal += cs.Weight
			if cs.Percent == nil {
				continue
			}
			parts = append(parts, part{*cs.Percent, cs.Weight})
			mcqAbsent = false
		}
	}

	if physicalOverall != nil {
		parts = append(parts, part{*physicalOverall, 1.0 - mcqWeightTotal})
	}

	if len(parts) == 0 {
		return nil, mcqAbsent
	}

	var sum, weight float64
	for _, p := range parts {
		sum += p.pct * p.weight
		weight += p.weight
	}
	score := sum / weight
	return &score, mcqAbsent
}
