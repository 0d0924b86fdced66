package mcq

import (
	"fmt"
	"strings"
)

// ValidationError reports one malformed response.
type ValidationError struct {
	QuestionID string `json:"question_id"`
	Message    string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.QuestionID, e.Message)
}

// ValidationErrors aggregates every malformed response so the caller can
// surface them together.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return "invalid responses: " + strings.Join(msgs, "; ")
}

// ValidateResponses rejects malformed responses before any scoring:
// answers referencing choices that don't belong to their question,
// duplicate multi-select choices, out-of-range scale values, wrong
// answer shapes, answers to unknown questions, and unanswered required
// questions. Unanswered optional questions are fine.
func ValidateResponses(bank []Category, responses ResponseSet) error {
	var errs ValidationErrors

	questions := make(map[string]*Question)
	for i := range bank {
		cat := &bank[i]
		if !cat.Active {
			continue
		}
		for j := range cat.Questions {
			q := &cat.Questions[j]
			if !q.Active {
				continue
			}
			questions[q.ID] = q

			ans, answered := responses[q.ID]
			if !answered {
				if q.Required {
					errs = append(errs, ValidationError{q.ID, "required question is unanswered"})
				}
				continue
			}
			errs = append(errs, validateAnswer(q, ans)...)
		}
	}

	for id := range responses {
		if _, ok := questions[id]; !ok {
			errs = append(errs, ValidationError{id, "answer references an unknown or inactive question"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateAnswer(q *Question, ans Answer) ValidationErrors {
	var errs ValidationErrors

	switch q.Type {
	case TypeSingle:
		if len(ans.Choices) != 1 {
			errs = append(errs, ValidationError{q.ID, fmt.Sprintf("single-choice question answered with %d choices", len(ans.Choices))})
			break
		}
		if _, ok := q.Choice(ans.Choices[0]); !ok {
			errs = append(errs, ValidationError{q.ID, fmt.Sprintf("choice %q does not belong to this question", ans.Choices[0])})
		}

	case TypeMultiple:
		if len(ans.Choices) == 0 {
			errs = append(errs, ValidationError{q.ID, "multiple-choice question answered with no choices"})
			break
		}
		seen := make(map[string]bool, len(ans.Choices))
		for _, id := range ans.Choices {
			if seen[id] {
				errs = append(errs, ValidationError{q.ID, fmt.Sprintf("duplicate choice %q", id)})
				continue
			}
			seen[id] = true
			if _, ok := q.Choice(id); !ok {
				errs = append(errs, ValidationError{q.ID, fmt.Sprintf("choice %q does not belong to this question", id)})
			}
		}

	case TypeScale:
		if ans.Scale == nil {
			errs = append(errs, ValidationError{q.ID, "scale question answered without a value"})
			break
		}
		if *ans.Scale < 1 || *ans.Scale > ScaleMax {
			errs = append(errs, ValidationError{q.ID, fmt.Sprintf("scale value %d outside 1-%d", *ans.Scale, ScaleMax)})
		}

	case TypeText:
		if strings.TrimSpace(ans.Text) == "" && q.Required {
			errs = append(errs, ValidationError{q.ID, "required text question answered with empty text"})
		}
	}

	return errs
}
