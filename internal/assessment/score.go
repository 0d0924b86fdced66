package assessment

// scoreState distinguishes a missing test score from a computed or
// trainer-overridden one.
type scoreState int

const (
	stateMissing scoreState = iota
	stateComputed
	stateOverridden
)

// TestScore is the tagged result of scoring one physical test. The zero
// value is "missing": the test had no raw data and no override, and must
// be excluded from aggregation rather than counted as zero.
type TestScore struct {
	value float64
	state scoreState
}

// Computed wraps an automatically computed score.
func Computed(v float64) TestScore {
	return TestScore{value: v, state: stateComputed}
}

// Overridden wraps a trainer-entered score that supersedes computation.
func Overridden(v float64) TestScore {
	return TestScore{value: v, state: stateOverridden}
}

// Missing is the explicit absent score.
func Missing() TestScore {
	return TestScore{}
}

// Value returns the score and whether one is present.
func (s TestScore) Value() (float64, bool) {
	return s.value, s.state != stateMissing
}

// IsOverridden reports whether the score came from a manual override.
func (s TestScore) IsOverridden() bool {
	return s.state == stateOverridden
}

// IsMissing reports whether no score is present.
func (s TestScore) IsMissing() bool {
	return s.state == stateMissing
}
