package assessment

import (
	"time"

	"github.com/google/uuid"
)

// TestID identifies one of the seven physical tests.
type TestID string

const (
	TestOverheadSquat    TestID = "overhead_squat"
	TestPushUp           TestID = "push_up"
	TestSingleLegBalance TestID = "single_leg_balance"
	TestToeTouch         TestID = "toe_touch"
	TestShoulderMobility TestID = "shoulder_mobility"
	TestFarmersCarry     TestID = "farmers_carry"
	TestStepTest         TestID = "step_test"
)

// AllTests lists every physical test in report order.
var AllTests = []TestID{
	TestOverheadSquat,
	TestPushUp,
	TestSingleLegBalance,
	TestToeTouch,
	TestShoulderMobility,
	TestFarmersCarry,
	TestStepTest,
}

// PushUpVariation is the recognized execution mode of the push-up test.
type PushUpVariation string

const (
	PushUpStandard PushUpVariation = "standard"
	PushUpModified PushUpVariation = "modified"
	PushUpWall     PushUpVariation = "wall"
)

// ReachPosition records a qualitative toe-touch outcome when no tape
// measurement was taken.
type ReachPosition string

const (
	ReachPalmFloor ReachPosition = "palm_floor"
	ReachFingertip ReachPosition = "fingertip_floor"
	ReachAnkle     ReachPosition = "ankle"
	ReachShin      ReachPosition = "shin"
	ReachKnee      ReachPosition = "knee"
)

// Client carries the demographic fields threshold lookups bucket on.
type Client struct {
	Age          int     `json:"age" validate:"min=10,max=120"`
	Gender       string  `json:"gender" validate:"oneof=male female"`
	BodyWeightKg float64 `json:"body_weight_kg,omitempty" validate:"omitempty,gt=0"`
}

// OverheadSquat is an examiner-graded movement screen. Quality is the
// observed tier (3 no compensation .. 0 pain/unable). When only the
// compensation flags were recorded, Quality is left nil and the scorer
// derives the tier from the flags.
type OverheadSquat struct {
	Quality     *int `json:"quality,omitempty" validate:"omitempty,min=0,max=3"`
	Pain        bool `json:"pain,omitempty"`
	KneeValgus  bool `json:"knee_valgus,omitempty"`
	ForwardLean bool `json:"forward_lean,omitempty"`
	HeelRise    bool `json:"heel_rise,omitempty"`
}

// PushUp records the repetition count and execution variation.
// An empty variation means standard.
type PushUp struct {
	Reps      int             `json:"reps" validate:"min=0"`
	Variation PushUpVariation `json:"variation,omitempty" validate:"omitempty,oneof=standard modified wall"`
}

// SingleLegBalance records hold durations in seconds for each leg with
// eyes open and closed.
type SingleLegBalance struct {
	OpenLeftSec    float64 `json:"open_left_s" validate:"min=0"`
	OpenRightSec   float64 `json:"open_right_s" validate:"min=0"`
	ClosedLeftSec  float64 `json:"closed_left_s" validate:"min=0"`
	ClosedRightSec float64 `json:"closed_right_s" validate:"min=0"`
}

// ToeTouch records fingertip distance to the floor in centimeters
// (negative means past the toes), or a qualitative reach position when
// no measurement was taken. Exactly one of the two should be set.
type ToeTouch struct {
	DistanceCm *float64       `json:"distance_cm,omitempty" validate:"omitempty,min=-50,max=80"`
	Reach      *ReachPosition `json:"reach,omitempty" validate:"omitempty,oneof=palm_floor fingertip_floor ankle shin knee"`
}

// ShoulderMobility records the fist-to-fist distance behind the back for
// each side, in centimeters.
type ShoulderMobility struct {
	LeftCm  float64 `json:"left_cm" validate:"min=0"`
	RightCm float64 `json:"right_cm" validate:"min=0"`
}

// FarmersCarry records the loaded carry: load, distance covered, elapsed
// time, and the load expressed as a percentage of body weight.
type FarmersCarry struct {
	WeightKg      float64 `json:"weight_kg" validate:"gt=0"`
	DistanceM     float64 `json:"distance_m" validate:"min=0"`
	TimeSec       float64 `json:"time_s" validate:"gt=0"`
	BodyWeightPct float64 `json:"body_weight_pct" validate:"gt=0,max=150"`
}

// StepTest records the Harvard step test: total stepping duration and the
// three one-minute recovery heart rates.
type StepTest struct {
	DurationSec float64 `json:"duration_s" validate:"gt=0"`
	HR1         int     `json:"hr1" validate:"gt=0,max=250"`
	HR2         int     `json:"hr2" validate:"gt=0,max=250"`
	HR3         int     `json:"hr3" validate:"gt=0,max=250"`
}

// Environment captures where the assessment took place. Temperature only
// matters for outdoor sessions.
type Environment struct {
	Location     string   `json:"location,omitempty" validate:"omitempty,oneof=indoor outdoor"`
	TemperatureC *float64 `json:"temperature_c,omitempty" validate:"omitempty,min=-30,max=50"`
}

// Assessment is one client evaluation on one date. Raw measurement fields
// are pointers: nil means the test was skipped, and skipped tests are
// excluded from category aggregation rather than scored as zero.
type Assessment struct {
	ClientID  uuid.UUID `json:"client_id,omitempty"`
	TrainerID uuid.UUID `json:"trainer_id,omitempty"`
	Date      time.Time `json:"date,omitempty"`

	Client Client `json:"client" validate:"required"`

	OverheadSquat    *OverheadSquat    `json:"overhead_squat,omitempty" validate:"omitempty"`
	PushUp           *PushUp           `json:"push_up,omitempty" validate:"omitempty"`
	SingleLegBalance *SingleLegBalance `json:"single_leg_balance,omitempty" validate:"omitempty"`
	ToeTouch         *ToeTouch         `json:"toe_touch,omitempty" validate:"omitempty"`
	ShoulderMobility *ShoulderMobility `json:"shoulder_mobility,omitempty" validate:"omitempty"`
	FarmersCarry     *FarmersCarry     `json:"farmers_carry,omitempty" validate:"omitempty"`
	StepTest         *StepTest         `json:"step_test,omitempty" validate:"omitempty"`

	Environment *Environment `json:"environment,omitempty" validate:"omitempty"`

	// Overrides holds trainer-entered per-test scores. An entry takes
	// precedence over the computed value until explicitly cleared.
	Overrides map[TestID]float64 `json:"overrides,omitempty"`
}

// HasMeasurement reports whether raw data was recorded for the given test.
func (a *Assessment) HasMeasurement(t TestID) bool {
	switch t {
	case TestOverheadSquat:
		return a.OverheadSquat != nil
	case TestPushUp:
		return a.PushUp != nil
	case TestSingleLegBalance:
		return a.SingleLegBalance != nil
	case TestToeTouch:
		return a.ToeTouch != nil
	case TestShoulderMobility:
		return a.ShoulderMobility != nil
	case TestFarmersCarry:
		return a.FarmersCarry != nil
	case TestStepTest:
		return a.StepTest != nil
	}
	return false
}

// Override returns the trainer-entered score for a test, if one is set.
func (a *Assessment) Override(t TestID) (float64, bool) {
	v, ok := a.Overrides[t]
	return v, ok
}

// SetOverride records a trainer-entered score for a test.
func (a *Assessment) SetOverride(t TestID, score float64) {
	if a.Overrides == nil {
		a.Overrides = make(map[TestID]float64)
	}
	a.Overrides[t] = score
}

// ClearOverride removes a trainer-entered score so automatic recomputation
// resumes for that test.
func (a *Assessment) ClearOverride(t TestID) {
	delete(a.Overrides, t)
}
