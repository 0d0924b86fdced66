package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the5hc/fitscore/internal/ruleset"
)

const testAssessment = `{
  "client": {"age": 34, "gender": "male", "body_weight_kg": 80},
  "overhead_squat": {"quality": 3},
  "push_up": {"reps": 30},
  "single_leg_balance": {"open_left_s": 50, "open_right_s": 50, "closed_left_s": 35, "closed_right_s": 35},
  "toe_touch": {"distance_cm": -2},
  "shoulder_mobility": {"left_cm": 4, "right_cm": 5},
  "farmers_carry": {"weight_kg": 80, "distance_m": 45, "time_s": 50, "body_weight_pct": 100},
  "step_test": {"duration_s": 300, "hr1": 55, "hr2": 52, "hr3": 50}
}`

const testBank = `[
  {
    "category": {"name": "Lifestyle", "weight": 0.15, "order": 1},
    "question_text": "How many hours do you sleep?",
    "question_type": "single",
    "is_required": false,
    "points": 4,
    "order": 1,
    "is_active": true,
    "choices": [
      {"choice_text": "Under 6 hours", "points": 0, "order": 1, "risk_factor": "sleep_deprivation"},
      {"choice_text": "8 or more", "points": 4, "order": 2}
    ]
  }
]`

const testResponses = `{"lifestyle-q1": {"choices": ["lifestyle-q1-c2"]}}`

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScoreFilePhysicalOnly(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTemp(t, tmpDir, "kim.assessment.json", testAssessment)

	rep, err := scoreFile(path, "", "", ruleset.Default())
	require.NoError(t, err)

	require.NotNil(t, rep.Overall)
	assert.InDelta(t, 97.5, *rep.Overall, 1e-9)
	assert.True(t, rep.MCQAbsent)
	require.NotNil(t, rep.Comprehensive)
	assert.Equal(t, *rep.Overall, *rep.Comprehensive)
	assert.Len(t, rep.Tests, 7)
	assert.Len(t, rep.Physical, 4)
}

func TestScoreFileWithResponses(t *testing.T) {
	tmpDir := t.TempDir()
	assessmentPath := writeTemp(t, tmpDir, "kim.assessment.json", testAssessment)
	bankPath := writeTemp(t, tmpDir, "bank.json", testBank)
	responsesPath := writeTemp(t, tmpDir, "responses.json", testResponses)

	rep, err := scoreFile(assessmentPath, responsesPath, bankPath, ruleset.Default())
	require.NoError(t, err)

	assert.False(t, rep.MCQAbsent)
	require.Len(t, rep.MCQ, 1)
	require.NotNil(t, rep.MCQ[0].Percent)
	assert.InDelta(t, 100, *rep.MCQ[0].Percent, 1e-9)

	// 0.85 physical share + 0.15 lifestyle share
	require.NotNil(t, rep.Comprehensive)
	assert.InDelta(t, 0.85*97.5+0.15*100, *rep.Comprehensive, 1e-9)
}

func TestScoreFileResponsesRequireBank(t *testing.T) {
	tmpDir := t.TempDir()
	assessmentPath := writeTemp(t, tmpDir, "kim.assessment.json", testAssessment)
	responsesPath := writeTemp(t, tmpDir, "responses.json", testResponses)

	_, err := scoreFile(assessmentPath, responsesPath, "", ruleset.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question bank")
}

func TestScoreFileRejectsInvalidAssessment(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTemp(t, tmpDir, "bad.assessment.json", `{"client": {"age": -5, "gender": "male"}}`)

	_, err := scoreFile(path, "", "", ruleset.Default())
	require.Error(t, err)
}

func TestScoreFileMissingFile(t *testing.T) {
	_, err := scoreFile(filepath.Join(t.TempDir(), "absent.json"), "", "", ruleset.Default())
	require.Error(t, err)
}

func TestScoreCmd(t *testing.T) {
	assert.Equal(t, "score <assessment-file>", scoreCmd.Use)
	assert.NotEmpty(t, scoreCmd.Short)
	assert.NotEmpty(t, scoreCmd.Long)
	assert.NotNil(t, scoreCmd.Run)
}
