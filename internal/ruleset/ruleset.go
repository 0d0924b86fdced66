// Package ruleset holds the immutable scoring configuration: threshold
// tables bucketed by age and gender, category weights, interpretation
// bands, and the global rate constants. Rulesets are loaded once at
// startup and passed into every scoring call, so the same functions can
// be exercised against multiple rulesets without shared state.
package ruleset

import "fmt"

// Direction tells a table which side of a band limit is better.
const (
	DirectionHigher = "higher" // larger raw values score better (reps, seconds)
	DirectionLower  = "lower"  // smaller raw values score better (distances)
)

// Band maps a raw-measurement boundary to an ordinal score. For a
// "higher" table a band matches when value >= Limit; for a "lower" table
// when value <= Limit.
type Band struct {
	Limit float64 `yaml:"limit"`
	Score float64 `yaml:"score"`
}

// Bucket is a gender/age-range slice of a threshold table.
type Bucket struct {
	Gender string `yaml:"gender"`
	AgeMin int    `yaml:"age_min"`
	AgeMax int    `yaml:"age_max"`
	Bands  []Band `yaml:"bands"`
}

// Table is one threshold lookup table. Either Bands (unbucketed) or
// Buckets (age/gender normative data) is populated. Max is the top of
// the table's ordinal scale, used when converting to percentages.
type Table struct {
	Direction string   `yaml:"direction"`
	Max       float64  `yaml:"max"`
	Bands     []Band   `yaml:"bands,omitempty"`
	Buckets   []Bucket `yaml:"buckets,omitempty"`
}

// Lookup maps a raw value through an unbucketed table. Values matching
// no band score zero.
func (t *Table) Lookup(value float64) float64 {
	return lookupBands(t.Direction, t.Bands, value)
}

// LookupBucketed maps a raw value through the bucket for the given
// gender and age. A missing bucket is a corrupted ruleset, reported as a
// ConfigError rather than masked by a default.
func (t *Table) LookupBucketed(gender string, age int, value float64) (float64, error) {
	for i := range t.Buckets {
		b := &t.Buckets[i]
		if b.Gender == gender && age >= b.AgeMin && age <= b.AgeMax {
			return lookupBands(t.Direction, b.Bands, value), nil
		}
	}
	return 0, &ConfigError{
		Field:   "table bucket",
		Message: fmt.Sprintf("no bucket for gender=%s age=%d", gender, age),
	}
}

func lookupBands(direction string, bands []Band, value float64) float64 {
	switch direction {
	case DirectionLower:
		for _, b := range bands {
			if value <= b.Limit {
				return b.Score
			}
		}
	default:
		for _, b := range bands {
			if value >= b.Limit {
				return b.Score
			}
		}
	}
	return 0
}

// TestWeight is one test's share of its category.
type TestWeight struct {
	Test   string  `yaml:"test"`
	Weight float64 `yaml:"weight"`
}

// Category is one physical scoring category: a weighted combination of
// one to three test scores. Member weights sum to 1.0.
type Category struct {
	Name   string       `yaml:"name"`
	Weight float64      `yaml:"weight"`
	Tests  []TestWeight `yaml:"tests"`
}

// Tables collects the per-test threshold tables.
type Tables struct {
	PushUp        Table `yaml:"push_up"`
	BalanceOpen   Table `yaml:"balance_eyes_open"`
	BalanceClosed Table `yaml:"balance_eyes_closed"`
	ToeTouch      Table `yaml:"toe_touch"`
	Shoulder      Table `yaml:"shoulder_mobility"`
	CarryDistance Table `yaml:"carry_distance"`
	PFI           Table `yaml:"pfi"`
}

// Interpretation holds the band minima shared by physical and MCQ
// percentage scores.
type Interpretation struct {
	Excellent float64 `yaml:"excellent"`
	Good      float64 `yaml:"good"`
	Average   float64 `yaml:"average"`
}

// SquatRules configures the overhead-squat movement screen.
type SquatRules struct {
	Max         float64 `yaml:"max"`          // top quality tier
	FlagPenalty float64 `yaml:"flag_penalty"` // per compensation flag, floor 0
}

// PushUpRules holds the variation multipliers applied to the raw count
// before threshold lookup.
type PushUpRules struct {
	ModifiedFactor float64 `yaml:"modified_factor"`
	WallFactor     float64 `yaml:"wall_factor"`
}

// BalanceRules weights the four hold durations; eyes-closed holds carry
// more weight, reflecting greater difficulty.
type BalanceRules struct {
	OpenWeight   float64 `yaml:"open_weight"`   // per eyes-open leg
	ClosedWeight float64 `yaml:"closed_weight"` // per eyes-closed leg
}

// ToeTouchRules converts qualitative reach positions to an equivalent
// distance-to-floor before table lookup.
type ToeTouchRules struct {
	ReachDistances map[string]float64 `yaml:"reach_distances"`
}

// ShoulderRules configures the bilateral-asymmetry compensation check.
type ShoulderRules struct {
	AsymmetryToleranceCm float64 `yaml:"asymmetry_tolerance_cm"`
	AsymmetryCap         float64 `yaml:"asymmetry_cap"`
}

// CarryRules configures farmer's-carry adjustments around the base
// distance band: a pace penalty and the body-weight-percentage scaling
// bonus cap.
type CarryRules struct {
	MinSpeedMS  float64 `yaml:"min_speed_ms"`
	SlowPenalty float64 `yaml:"slow_penalty"`
	BonusCap    float64 `yaml:"bonus_cap"`
}

// TempBand maps an outdoor temperature range to an endurance adjustment
// factor.
type TempBand struct {
	MinC   float64 `yaml:"min_c"`
	MaxC   float64 `yaml:"max_c"`
	Factor float64 `yaml:"factor"`
}

// FeeRules holds the VAT and card-fee rates used by the fee
// back-calculation.
type FeeRules struct {
	VATRate     float64 `yaml:"vat_rate"`
	CardFeeRate float64 `yaml:"card_fee_rate"`
}

// MCQWeights are the default knowledge/lifestyle/readiness category
// weights, used when scoring against a bank that omits them. The
// remainder after summing is implicitly the physical domain's share.
type MCQWeights map[string]float64

// Ruleset is the complete scoring configuration passed to every scoring
// call.
type Ruleset struct {
	Version        int            `yaml:"version"`
	CategoryPoints float64        `yaml:"category_points"` // per-category point maximum
	Interpretation Interpretation `yaml:"interpretation"`
	Categories     []Category     `yaml:"categories"`
	Tables         Tables         `yaml:"tables"`
	OverheadSquat  SquatRules     `yaml:"overhead_squat"`
	PushUp         PushUpRules    `yaml:"push_up"`
	Balance        BalanceRules   `yaml:"balance"`
	ToeTouch       ToeTouchRules  `yaml:"toe_touch"`
	Shoulder       ShoulderRules  `yaml:"shoulder"`
	Carry          CarryRules     `yaml:"carry"`
	Temperature    []TempBand     `yaml:"temperature"`
	MCQ            MCQWeights     `yaml:"mcq_weights"`
	Fees           FeeRules       `yaml:"fees"`
}

// TemperatureFactor returns the outdoor endurance adjustment for a
// temperature, 1.0 when no band matches.
func (r *Ruleset) TemperatureFactor(tempC float64) float64 {
	for _, b := range r.Temperature {
		if tempC >= b.MinC && tempC <= b.MaxC {
			return b.Factor
		}
	}
	return 1.0
}

// CategoryByName returns the physical category definition, if present.
func (r *Ruleset) CategoryByName(name string) (*Category, bool) {
	for i := range r.Categories {
		if r.Categories[i].Name == name {
			return &r.Categories[i], true
		}
	}
	return nil, false
}
