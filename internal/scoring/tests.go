package scoring

import (
	"fmt"
	"math"

	"github.com/the5hc/fitscore/internal/assessment"
	"github.com/the5hc/fitscore/internal/ruleset"
)

// scoreOverheadSquat grades the movement screen. Pain always scores
// zero. When the examiner recorded a quality tier it is the starting
// point; otherwise the top tier is assumed and compensation flags reduce
// it, floored at zero.
func scoreOverheadSquat(sq *assessment.OverheadSquat, rs *ruleset.Ruleset) assessment.TestScore {
	if sq.Pain {
		return assessment.Computed(0)
	}
	tier := rs.OverheadSquat.Max
	if sq.Quality != nil {
		tier = float64(*sq.Quality)
	}
	flags := 0
	for _, set := range []bool{sq.KneeValgus, sq.ForwardLean, sq.HeelRise} {
		if set {
			flags++
		}
	}
	tier -= float64(flags) * rs.OverheadSquat.FlagPenalty
	if tier < 0 {
		tier = 0
	}
	return assessment.Computed(tier)
}

// scorePushUp scales the raw count by the variation factor, then looks
// the scaled count up in the age/gender normative table.
func scorePushUp(p *assessment.PushUp, client assessment.Client, rs *ruleset.Ruleset) (assessment.TestScore, error) {
	factor := 1.0
	switch p.Variation {
	case assessment.PushUpModified:
		factor = rs.PushUp.ModifiedFactor
	case assessment.PushUpWall:
		factor = rs.PushUp.WallFactor
	}
	scaled := float64(p.Reps) * factor
	score, err := rs.Tables.PushUp.LookupBucketed(client.Gender, client.Age, scaled)
	if err != nil {
		return assessment.Missing(), err
	}
	return assessment.Computed(score), nil
}

// scoreBalance maps the four hold durations to sub-scores and combines
// them with the ruleset's per-leg weights. Eyes-closed holds carry more
// weight.
func scoreBalance(b *assessment.SingleLegBalance, rs *ruleset.Ruleset) assessment.TestScore {
	open := rs.Tables.BalanceOpen.Lookup(b.OpenLeftSec) + rs.Tables.BalanceOpen.Lookup(b.OpenRightSec)
	closed := rs.Tables.BalanceClosed.Lookup(b.ClosedLeftSec) + rs.Tables.BalanceClosed.Lookup(b.ClosedRightSec)
	score := open*rs.Balance.OpenWeight + closed*rs.Balance.ClosedWeight
	return assessment.Computed(score)
}

// scoreToeTouch resolves a qualitative reach position to its equivalent
// distance before the table lookup.
func scoreToeTouch(tt *assessment.ToeTouch, rs *ruleset.Ruleset) (assessment.TestScore, error) {
	var distance float64
	switch {
	case tt.DistanceCm != nil:
		distance = *tt.DistanceCm
	case tt.Reach != nil:
		d, ok := rs.ToeTouch.ReachDistances[string(*tt.Reach)]
		if !ok {
			return assessment.Missing(), &ruleset.ConfigError{
				Field:   "toe_touch.reach_distances",
				Message: fmt.Sprintf("no distance for reach position %q", *tt.Reach),
			}
		}
		distance = d
	default:
		return assessment.Missing(), nil
	}
	return assessment.Computed(rs.Tables.ToeTouch.Lookup(distance)), nil
}

// scoreShoulder scores the worse (larger) fist distance. Asymmetry
// beyond the tolerance is a compensation pattern: the score is capped
// and a note is added for the report.
func scoreShoulder(sm *assessment.ShoulderMobility, rs *ruleset.Ruleset, res *Result) assessment.TestScore {
	worse := math.Max(sm.LeftCm, sm.RightCm)
	score := rs.Tables.Shoulder.Lookup(worse)
	asymmetry := math.Abs(sm.LeftCm - sm.RightCm)
	if asymmetry > rs.Shoulder.AsymmetryToleranceCm {
		if score > rs.Shoulder.AsymmetryCap {
			score = rs.Shoulder.AsymmetryCap
		}
		res.Notes = append(res.Notes, fmt.Sprintf(
			"shoulder mobility: %.1fcm bilateral asymmetry exceeds %.0fcm tolerance",
			asymmetry, rs.Shoulder.AsymmetryToleranceCm))
	}
	return assessment.Computed(score)
}

// scoreCarry derives the base score from distance, penalizes a slow
// pace, scales by body-weight percentage, and applies the outdoor
// temperature adjustment. The final score is clamped to the table scale
// so the body-weight bonus never escapes the declared range.
func scoreCarry(fc *assessment.FarmersCarry, env *assessment.Environment, rs *ruleset.Ruleset) assessment.TestScore {
	base := rs.Tables.CarryDistance.Lookup(fc.DistanceM)
	if speed := fc.DistanceM / fc.TimeSec; speed < rs.Carry.MinSpeedMS {
		base -= rs.Carry.SlowPenalty
		if base < 0 {
			base = 0
		}
	}

	score := base * carryLoadFactor(fc.BodyWeightPct, rs.Carry.BonusCap)

	if env != nil && env.Location == "outdoor" && env.TemperatureC != nil {
		score *= rs.TemperatureFactor(*env.TemperatureC)
	}

	if scaleMax := rs.Tables.CarryDistance.Max; score > scaleMax {
		score = scaleMax
	}
	return assessment.Computed(score)
}

// carryLoadFactor scales the base score by the body-weight percentage
// carried: below 50% the load is too light and the score shrinks
// proportionally; 50-100% ramps linearly to full credit; above 100% a
// bonus accrues up to the cap (reached at 150%).
func carryLoadFactor(pct, bonusCap float64) float64 {
	switch {
	case pct < 50:
		return pct / 50
	case pct <= 100:
		return 0.5 + pct/200
	default:
		if pct > 150 {
			pct = 150
		}
		factor := 1.0 + (pct-100)/250
		if factor > bonusCap {
			factor = bonusCap
		}
		return factor
	}
}

// scoreStepTest computes the Physical Fitness Index from the recovery
// heart rates and maps it through the PFI table.
func scoreStepTest(st *assessment.StepTest, rs *ruleset.Ruleset, res *Result) assessment.TestScore {
	pfi := st.DurationSec * 100 / (2 * float64(st.HR1+st.HR2+st.HR3))
	res.PFI = &pfi
	return assessment.Computed(rs.Tables.PFI.Lookup(pfi))
}
