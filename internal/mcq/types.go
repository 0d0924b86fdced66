// Package mcq implements the questionnaire scoring engine: categorical
// answers are converted into per-category percentage scores using the
// question bank's point values, and risk factors flagged by specific
// answer choices are extracted separately. The bank is passed in as
// immutable value objects; scoring is idempotent for a given response
// set.
package mcq

import (
	"encoding/json"
	"fmt"
	"os"
)

// QuestionType enumerates the supported answer formats.
type QuestionType string

const (
	TypeSingle   QuestionType = "single"
	TypeMultiple QuestionType = "multiple"
	TypeScale    QuestionType = "scale"
	TypeText     QuestionType = "text"
)

// ScaleMax is the top of the Likert scale for scale questions.
const ScaleMax = 10

// Choice is one selectable answer. A non-empty RiskFactor tags the
// choice as a health or lifestyle concern surfaced independently of the
// numeric score.
type Choice struct {
	ID         string  `json:"id"`
	Text       string  `json:"choice_text"`
	Points     float64 `json:"points"`
	RiskFactor string  `json:"risk_factor,omitempty"`
	Order      int     `json:"order"`
	Correct    bool    `json:"is_correct,omitempty"`
}

// Question belongs to exactly one category and owns its ordered choices.
type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"question_text"`
	TextKo   string       `json:"question_text_ko,omitempty"`
	Type     QuestionType `json:"question_type"`
	Required bool         `json:"is_required"`
	Points   float64      `json:"points"`
	HelpText string       `json:"help_text,omitempty"`
	Order    int          `json:"order"`
	Active   bool         `json:"is_active"`
	Choices  []Choice     `json:"choices,omitempty"`
}

// Choice returns the owned choice with the given ID.
func (q *Question) Choice(id string) (*Choice, bool) {
	for i := range q.Choices {
		if q.Choices[i].ID == id {
			return &q.Choices[i], true
		}
	}
	return nil, false
}

// MaxChoicePoints returns the highest point value among the question's
// choices.
func (q *Question) MaxChoicePoints() float64 {
	var max float64
	for _, c := range q.Choices {
		if c.Points > max {
			max = c.Points
		}
	}
	return max
}

// Category groups related questions and carries its weight toward the
// comprehensive score. Weights across active categories sum to less than
// 1.0; the remainder is the physical domain's share.
type Category struct {
	Name        string     `json:"name"`
	NameKo      string     `json:"name_ko,omitempty"`
	Weight      float64    `json:"weight"`
	Order       int        `json:"order"`
	Description string     `json:"description,omitempty"`
	Active      bool       `json:"is_active"`
	Questions   []Question `json:"questions"`
}

// Answer is one response: selected choice IDs for single/multiple
// questions, a raw value for scale questions, or free text.
type Answer struct {
	Choices []string `json:"choices,omitempty"`
	Scale   *int     `json:"scale,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResponseSet maps question IDs to answers.
type ResponseSet map[string]Answer

// LoadResponses reads a response set from a JSON file.
func LoadResponses(path string) (ResponseSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading responses file: %w", err)
	}
	var rs ResponseSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing responses: %w", err)
	}
	return rs, nil
}
