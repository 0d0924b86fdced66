package ruleset

import (
	"fmt"
	"math"
	"strings"
)

// ConfigError is a fatal ruleset defect found at initialization:
// weights that don't sum sensibly, a threshold table missing a bucket,
// misordered bands. These indicate a corrupted ruleset and are never
// masked with fallback defaults.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ruleset config error: %s: %s", e.Field, e.Message)
}

const weightTolerance = 1e-6

// Validate checks the ruleset invariants. It returns the first defect
// found; a ruleset that fails validation must not be used for scoring.
func (r *Ruleset) Validate() error {
	if r.CategoryPoints <= 0 {
		return &ConfigError{Field: "category_points", Message: "must be positive"}
	}

	if err := r.validateInterpretation(); err != nil {
		return err
	}
	if err := r.validateCategories(); err != nil {
		return err
	}
	if err := r.validateTables(); err != nil {
		return err
	}
	if err := r.validateMCQWeights(); err != nil {
		return err
	}

	if r.OverheadSquat.Max <= 0 {
		return &ConfigError{Field: "overhead_squat.max", Message: "must be positive"}
	}
	if r.PushUp.ModifiedFactor <= 0 || r.PushUp.ModifiedFactor > 1 {
		return &ConfigError{Field: "push_up.modified_factor", Message: "must be in (0, 1]"}
	}
	if r.PushUp.WallFactor <= 0 || r.PushUp.WallFactor > r.PushUp.ModifiedFactor {
		return &ConfigError{Field: "push_up.wall_factor", Message: "must be in (0, modified_factor]"}
	}
	if r.Balance.ClosedWeight < r.Balance.OpenWeight {
		return &ConfigError{Field: "balance", Message: "eyes-closed weight must be at least eyes-open weight"}
	}
	balanceTotal := 2*r.Balance.OpenWeight + 2*r.Balance.ClosedWeight
	if math.Abs(balanceTotal-1.0) > weightTolerance {
		return &ConfigError{Field: "balance", Message: fmt.Sprintf("leg weights sum to %.3f, want 1.0", balanceTotal)}
	}
	if r.Carry.BonusCap < 1.0 {
		return &ConfigError{Field: "carry.bonus_cap", Message: "must be at least 1.0"}
	}
	if r.Fees.VATRate < 0 || r.Fees.VATRate >= 1 || r.Fees.CardFeeRate < 0 || r.Fees.CardFeeRate >= 1 {
		return &ConfigError{Field: "fees", Message: "rates must be in [0, 1)"}
	}
	for _, b := range r.Temperature {
		if b.MinC > b.MaxC {
			return &ConfigError{Field: "temperature", Message: fmt.Sprintf("band min %.1f above max %.1f", b.MinC, b.MaxC)}
		}
		if b.Factor <= 0 {
			return &ConfigError{Field: "temperature", Message: "factor must be positive"}
		}
	}
	return nil
}

func (r *Ruleset) validateInterpretation() error {
	i := r.Interpretation
	if !(i.Excellent > i.Good && i.Good > i.Average && i.Average > 0) {
		return &ConfigError{Field: "interpretation", Message: "band minima must descend from excellent to average"}
	}
	if i.Excellent > 100 {
		return &ConfigError{Field: "interpretation.excellent", Message: "must not exceed 100"}
	}
	return nil
}

func (r *Ruleset) validateCategories() error {
	if len(r.Categories) == 0 {
		return &ConfigError{Field: "categories", Message: "at least one category is required"}
	}
	var total float64
	for _, c := range r.Categories {
		if c.Weight <= 0 {
			return &ConfigError{Field: "categories." + c.Name, Message: "weight must be positive"}
		}
		total += c.Weight
		var memberTotal float64
		for _, tw := range c.Tests {
			if tw.Weight <= 0 {
				return &ConfigError{
					Field:   fmt.Sprintf("categories.%s.%s", c.Name, tw.Test),
					Message: "test weight must be positive",
				}
			}
			memberTotal += tw.Weight
		}
		if math.Abs(memberTotal-1.0) > weightTolerance {
			return &ConfigError{
				Field:   "categories." + c.Name,
				Message: fmt.Sprintf("test weights sum to %.3f, want 1.0", memberTotal),
			}
		}
	}
	if math.Abs(total-1.0) > weightTolerance {
		return &ConfigError{Field: "categories", Message: fmt.Sprintf("category weights sum to %.3f, want 1.0", total)}
	}
	return nil
}

func (r *Ruleset) validateMCQWeights() error {
	var total float64
	for name, w := range r.MCQ {
		if w <= 0 {
			return &ConfigError{Field: "mcq_weights." + name, Message: "weight must be positive"}
		}
		total += w
	}
	// The remainder is the physical domain's share, which must dominate.
	if total >= 0.5 {
		return &ConfigError{Field: "mcq_weights", Message: fmt.Sprintf("weights sum to %.3f, must stay below the physical share", total)}
	}
	return nil
}

func (r *Ruleset) validateTables() error {
	tables := []struct {
		name  string
		table *Table
	}{
		{"push_up", &r.Tables.PushUp},
		{"balance_eyes_open", &r.Tables.BalanceOpen},
		{"balance_eyes_closed", &r.Tables.BalanceClosed},
		{"toe_touch", &r.Tables.ToeTouch},
		{"shoulder_mobility", &r.Tables.Shoulder},
		{"carry_distance", &r.Tables.CarryDistance},
		{"pfi", &r.Tables.PFI},
	}
	for _, entry := range tables {
		if err := validateTable(entry.name, entry.table); err != nil {
			return err
		}
	}
	// The push-up table is normative data: both genders must cover the
	// full adult age range with no gaps.
	if err := validateBucketCoverage("tables.push_up", &r.Tables.PushUp); err != nil {
		return err
	}
	return nil
}

func validateTable(name string, t *Table) error {
	field := "tables." + name
	if t.Direction != DirectionHigher && t.Direction != DirectionLower {
		return &ConfigError{Field: field, Message: fmt.Sprintf("unknown direction %q", t.Direction)}
	}
	if t.Max <= 0 {
		return &ConfigError{Field: field, Message: "max must be positive"}
	}
	if len(t.Bands) == 0 && len(t.Buckets) == 0 {
		return &ConfigError{Field: field, Message: "table has neither bands nor buckets"}
	}
	if err := validateBands(field, t.Direction, t.Bands); err != nil {
		return err
	}
	for _, b := range t.Buckets {
		bucketField := fmt.Sprintf("%s[%s %d-%d]", field, b.Gender, b.AgeMin, b.AgeMax)
		if b.Gender != "male" && b.Gender != "female" {
			return &ConfigError{Field: bucketField, Message: "unknown gender"}
		}
		if b.AgeMin > b.AgeMax {
			return &ConfigError{Field: bucketField, Message: "age_min above age_max"}
		}
		if err := validateBands(bucketField, t.Direction, b.Bands); err != nil {
			return err
		}
	}
	return nil
}

func validateBands(field, direction string, bands []Band) error {
	if len(bands) == 0 {
		return nil
	}
	for i := 1; i < len(bands); i++ {
		prev, cur := bands[i-1], bands[i]
		ordered := cur.Limit < prev.Limit
		if direction == DirectionLower {
			ordered = cur.Limit > prev.Limit
		}
		if !ordered {
			return &ConfigError{Field: field, Message: fmt.Sprintf("bands misordered at index %d", i)}
		}
		if cur.Score >= prev.Score {
			return &ConfigError{Field: field, Message: fmt.Sprintf("band scores must descend, index %d", i)}
		}
	}
	return nil
}

func validateBucketCoverage(field string, t *Table) error {
	for _, gender := range []string{"male", "female"} {
		covered := make(map[int]bool)
		for _, b := range t.Buckets {
			if b.Gender != gender {
				continue
			}
			for age := b.AgeMin; age <= b.AgeMax; age++ {
				covered[age] = true
			}
		}
		var gaps []string
		for age := 18; age <= 99; age++ {
			if !covered[age] {
				gaps = append(gaps, fmt.Sprintf("%d", age))
			}
		}
		if len(gaps) > 0 {
			return &ConfigError{
				Field:   field,
				Message: fmt.Sprintf("%s buckets leave ages uncovered: %s", gender, strings.Join(gaps[:min(len(gaps), 5)], ", ")),
			}
		}
	}
	return nil
}
