package scoring

import (
	"math"
	"testing"

	"github.com/the5hc/fitscore/internal/assessment"
	"github.com/the5hc/fitscore/internal/ruleset"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func fullAssessment() *assessment.Assessment {
	dist := -2.0
	quality := 3
	return &assessment.Assessment{
		Client:        assessment.Client{Age: 34, Gender: "male", BodyWeightKg: 80},
		OverheadSquat: &assessment.OverheadSquat{Quality: &quality},
		PushUp:        &assessment.PushUp{Reps: 30},
		SingleLegBalance: &assessment.SingleLegBalance{
			OpenLeftSec: 50, OpenRightSec: 50, ClosedLeftSec: 35, ClosedRightSec: 35,
		},
		ToeTouch:         &assessment.ToeTouch{DistanceCm: &dist},
		ShoulderMobility: &assessment.ShoulderMobility{LeftCm: 4, RightCm: 5},
		FarmersCarry:     &assessment.FarmersCarry{WeightKg: 80, DistanceM: 45, TimeSec: 50, BodyWeightPct: 100},
		StepTest:         &assessment.StepTest{DurationSec: 300, HR1: 55, HR2: 52, HR3: 50},
	}
}

func mustScore(t *testing.T, a *assessment.Assessment) *Result {
	t.Helper()
	res, err := Score(a, ruleset.Default())
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	return res
}

func testValue(t *testing.T, res *Result, id assessment.TestID) float64 {
	t.Helper()
	v, ok := res.Tests[id].Value()
	if !ok {
		t.Fatalf("%s score missing", id)
	}
	return v
}

func TestOverheadSquatScoring(t *testing.T) {
	quality := func(q int) *int { return &q }
	tests := []struct {
		name  string
		squat assessment.OverheadSquat
		want  float64
	}{
		{"no compensation", assessment.OverheadSquat{Quality: quality(3)}, 3},
		{"minor compensation", assessment.OverheadSquat{Quality: quality(2)}, 2},
		{"pain overrides quality", assessment.OverheadSquat{Quality: quality(3), Pain: true}, 0},
		{"flags reduce recorded tier", assessment.OverheadSquat{Quality: quality(3), KneeValgus: true}, 2},
		{"flags only, derived from top tier", assessment.OverheadSquat{KneeValgus: true, ForwardLean: true}, 1},
		{"flags floor at zero", assessment.OverheadSquat{Quality: quality(1), KneeValgus: true, ForwardLean: true, HeelRise: true}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := fullAssessment()
			a.OverheadSquat = &tc.squat
			res := mustScore(t, a)
			if got := testValue(t, res, assessment.TestOverheadSquat); got != tc.want {
				t.Errorf("score = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPushUpVariationScaling(t *testing.T) {
	// 30 modified reps scale to 21, which lands in the male 30-39
	// table's 17-23 band.
	a := fullAssessment()
	a.PushUp = &assessment.PushUp{Reps: 30, Variation: assessment.PushUpModified}
	res := mustScore(t, a)
	if got := testValue(t, res, assessment.TestPushUp); got != 2 {
		t.Errorf("modified 30 reps score = %v, want 2", got)
	}
}

func TestPushUpVariationMonotonicity(t *testing.T) {
	variations := []assessment.PushUpVariation{
		assessment.PushUpStandard,
		assessment.PushUpModified,
		assessment.PushUpWall,
	}

	for _, reps := range []int{10, 20, 30, 40} {
		prev := math.Inf(1)
		for _, variation := range variations {
			a := fullAssessment()
			a.PushUp = &assessment.PushUp{Reps: reps, Variation: variation}
			res := mustScore(t, a)
			got := testValue(t, res, assessment.TestPushUp)
			if got > prev {
				t.Errorf("reps=%d: %s scores %v, above easier-variation score %v", reps, variation, got, prev)
			}
			prev = got
		}
	}
}

func TestPushUpEmptyVariationIsStandard(t *testing.T) {
	rs := ruleset.Default()
	base := fullAssessment()
	base.PushUp = &assessment.PushUp{Reps: 30}
	explicit := fullAssessment()
	explicit.PushUp = &assessment.PushUp{Reps: 30, Variation: assessment.PushUpStandard}

	resBase, _ := Score(base, rs)
	resExplicit, _ := Score(explicit, rs)

	if a, b := testValue(t, resBase, assessment.TestPushUp), testValue(t, resExplicit, assessment.TestPushUp); a != b {
		t.Errorf("unset variation scored %v, explicit standard scored %v", a, b)
	}
}

func TestBalanceWeightedAverage(t *testing.T) {
	a := fullAssessment()
	// Open holds band to 4 and 3; closed holds to 2 and 1.
	a.SingleLegBalance = &assessment.SingleLegBalance{
		OpenLeftSec: 50, OpenRightSec: 40, ClosedLeftSec: 12, ClosedRightSec: 5,
	}
	res := mustScore(t, a)
	// 0.2*(4+3) + 0.3*(2+1) = 1.4 + 0.9
	if got := testValue(t, res, assessment.TestSingleLegBalance); !almostEqual(got, 2.3) {
		t.Errorf("balance score = %v, want 2.3", got)
	}
}

func TestToeTouchReachConversion(t *testing.T) {
	reach := func(r assessment.ReachPosition) *assessment.ReachPosition { return &r }
	tests := []struct {
		name string
		tt   assessment.ToeTouch
		want float64
	}{
		{"past toes", assessment.ToeTouch{DistanceCm: ptr(-6.0)}, 4},
		{"at toes", assessment.ToeTouch{DistanceCm: ptr(0.0)}, 3},
		{"reach ankle equals ten centimeters", assessment.ToeTouch{Reach: reach(assessment.ReachAnkle)}, 2},
		{"reach knee", assessment.ToeTouch{Reach: reach(assessment.ReachKnee)}, 0},
		{"reach palm on floor", assessment.ToeTouch{Reach: reach(assessment.ReachPalmFloor)}, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := fullAssessment()
			a.ToeTouch = &tc.tt
			res := mustScore(t, a)
			if got := testValue(t, res, assessment.TestToeTouch); got != tc.want {
				t.Errorf("score = %v, want %v", got, tc.want)
			}
		})
	}
}

func ptr(v float64) *float64 { return &v }

func TestShoulderMobility(t *testing.T) {
	t.Run("worse side drives the score", func(t *testing.T) {
		a := fullAssessment()
		a.ShoulderMobility = &assessment.ShoulderMobility{LeftCm: 3, RightCm: 12}
		res := mustScore(t, a)
		if got := testValue(t, res, assessment.TestShoulderMobility); got != 2 {
			t.Errorf("score = %v, want 2 (worse side 12cm)", got)
		}
	})

	t.Run("asymmetry caps the score and adds a note", func(t *testing.T) {
		a := fullAssessment()
		a.ShoulderMobility = &assessment.ShoulderMobility{LeftCm: 0, RightCm: 11}
		res := mustScore(t, a)
		if got := testValue(t, res, assessment.TestShoulderMobility); got != 2 {
			t.Errorf("score = %v, want asymmetry cap 2", got)
		}
		if len(res.Notes) == 0 {
			t.Error("asymmetry should add a report note")
		}
	})

	t.Run("symmetric within tolerance keeps full score", func(t *testing.T) {
		a := fullAssessment()
		a.ShoulderMobility = &assessment.ShoulderMobility{LeftCm: 4, RightCm: 5}
		res := mustScore(t, a)
		if got := testValue(t, res, assessment.TestShoulderMobility); got != 4 {
			t.Errorf("score = %v, want 4", got)
		}
		if len(res.Notes) != 0 {
			t.Errorf("unexpected notes: %v", res.Notes)
		}
	})
}

func TestFarmersCarryLoadScaling(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want float64 // base score 4 at 45m in 50s
	}{
		{"sixty percent body weight", 60, 4 * 0.8},
		{"fifty percent boundary", 50, 4 * 0.75},
		{"below fifty scales proportionally", 40, 4 * 0.8}, // 40/50
		{"full body weight", 100, 4},
		{"overload bonus clamps to scale max", 150, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := fullAssessment()
			a.FarmersCarry = &assessment.FarmersCarry{WeightKg: 50, DistanceM: 45, TimeSec: 50, BodyWeightPct: tc.pct}
			res := mustScore(t, a)
			if got := testValue(t, res, assessment.TestFarmersCarry); !almostEqual(got, tc.want) {
				t.Errorf("score = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFarmersCarryOverloadBonus(t *testing.T) {
	// Base score 3 (35m): 125% body weight grants 1 + 25/250 = 1.1.
	a := fullAssessment()
	a.FarmersCarry = &assessment.FarmersCarry{WeightKg: 100, DistanceM: 35, TimeSec: 40, BodyWeightPct: 125}
	res := mustScore(t, a)
	if got := testValue(t, res, assessment.TestFarmersCarry); !almostEqual(got, 3*1.1) {
		t.Errorf("score = %v, want 3.3", got)
	}
}

func TestFarmersCarrySlowPacePenalty(t *testing.T) {
	a := fullAssessment()
	// 45m in 120s is 0.375 m/s, below the 0.5 m/s floor.
	a.FarmersCarry = &assessment.FarmersCarry{WeightKg: 80, DistanceM: 45, TimeSec: 120, BodyWeightPct: 100}
	res := mustScore(t, a)
	if got := testValue(t, res, assessment.TestFarmersCarry); !almostEqual(got, 3) {
		t.Errorf("score = %v, want 3 (base 4 minus pace penalty)", got)
	}
}

func TestFarmersCarryOutdoorTemperature(t *testing.T) {
	temp := 35.0
	a := fullAssessment()
	a.FarmersCarry = &assessment.FarmersCarry{WeightKg: 60, DistanceM: 35, TimeSec: 40, BodyWeightPct: 75}
	a.Environment = &assessment.Environment{Location: "outdoor", TemperatureC: &temp}
	res := mustScore(t, a)
	// base 3 × load 0.875 × heat adjustment 1.10
	if got := testValue(t, res, assessment.TestFarmersCarry); !almostEqual(got, 3*0.875*1.10) {
		t.Errorf("score = %v, want %v", got, 3*0.875*1.10)
	}
}

func TestStepTestPFI(t *testing.T) {
	a := fullAssessment()
	a.StepTest = &assessment.StepTest{DurationSec: 300, HR1: 80, HR2: 75, HR3: 70}
	res := mustScore(t, a)

	if res.PFI == nil {
		t.Fatal("PFI not computed")
	}
	// 300*100 / (2*225) = 66.67 → band 65-79 → 2
	if !almostEqual(*res.PFI, 300*100/450.0) {
		t.Errorf("PFI = %v, want %v", *res.PFI, 300*100/450.0)
	}
	if got := testValue(t, res, assessment.TestStepTest); got != 2 {
		t.Errorf("step test score = %v, want 2", got)
	}
}

func TestDeterminism(t *testing.T) {
	rs := ruleset.Default()
	a := fullAssessment()

	first, err := Score(a, rs)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Score(a, rs)
		if err != nil {
			t.Fatal(err)
		}
		if *first.Overall != *again.Overall {
			t.Fatalf("overall differs between runs: %v vs %v", *first.Overall, *again.Overall)
		}
		for id, score := range first.Tests {
			v1, ok1 := score.Value()
			v2, ok2 := again.Tests[id].Value()
			if v1 != v2 || ok1 != ok2 {
				t.Fatalf("%s differs between runs", id)
			}
		}
	}
}

func TestRangeInvariant(t *testing.T) {
	res := mustScore(t, fullAssessment())

	for id, score := range res.Tests {
		v, ok := score.Value()
		if !ok {
			continue
		}
		if v < 0 || v > res.TestMax[id] {
			t.Errorf("%s score %v outside [0, %v]", id, v, res.TestMax[id])
		}
	}
	for _, cat := range res.Categories {
		if cat.Percent == nil {
			continue
		}
		if *cat.Percent < 0 || *cat.Percent > 100 {
			t.Errorf("category %s percent %v outside [0, 100]", cat.Name, *cat.Percent)
		}
		if *cat.Points < 0 || *cat.Points > cat.Max {
			t.Errorf("category %s points %v outside [0, %v]", cat.Name, *cat.Points, cat.Max)
		}
	}
	if res.Overall == nil || *res.Overall < 0 || *res.Overall > 100 {
		t.Errorf("overall %v outside [0, 100]", res.Overall)
	}
}
