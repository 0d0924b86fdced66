package mcq

import "sort"

// CategoryScore is one questionnaire category's aggregated result.
// Percent is nil when the category had no scorable answered questions.
type CategoryScore struct {
	Name     string   `json:"name"`
	Weight   float64  `json:"weight"`
	Percent  *float64 `json:"percent,omitempty"`
	Answered int      `json:"answered"`
}

// RiskFactor is one triggered risk entry. Weight is the complement of
// the selected choice's normalized point value: lower points mean
// higher risk.
type RiskFactor struct {
	Category string  `json:"category"`
	Factor   string  `json:"factor"`
	Answer   string  `json:"answer"`
	Weight   float64 `json:"weight"`
}

// Result is the MCQ engine's output.
type Result struct {
	Categories []CategoryScore `json:"categories"`
	Risks      []RiskFactor    `json:"risks"`
}

// Category returns the named category score, if present.
func (r *Result) Category(name string) (*CategoryScore, bool) {
	for i := range r.Categories {
		if r.Categories[i].Name == name {
			return &r.Categories[i], true
		}
	}
	return nil, false
}

// Score computes per-category percentage scores and risk factors for a
// response set against a question bank. Responses are validated first;
// no score is computed past a validation failure. Inactive categories
// and questions are skipped. A category with nothing answered
// contributes no score (nil), never zero.
func Score(bank []Category, responses ResponseSet) (*Result, error) {
	if err := ValidateResponses(bank, responses); err != nil {
		return nil, err
	}

	res := &Result{}
	for i := range bank {
		cat := &bank[i]
		if !cat.Active {
			continue
		}
		cs := CategoryScore{Name: cat.Name, Weight: cat.Weight}

		var sum float64
		var scored int
		for j := range cat.Questions {
			q := &cat.Questions[j]
			if !q.Active {
				continue
			}
			ans, answered := responses[q.ID]
			if !answered {
				continue
			}
			res.Risks = append(res.Risks, questionRisks(cat.Name, q, ans)...)

			pct, ok := questionPercent(q, ans)
			if !ok {
				continue
			}
			sum += pct
			scored++
			cs.Answered++
		}

		if scored > 0 {
			avg := sum / float64(scored)
			cs.Percent = &avg
		}
		res.Categories = append(res.Categories, cs)
	}
	return res, nil
}

// questionPercent converts one answer to a 0-100 percentage. Text
// questions and questions with no attainable points are excluded from
// numeric scoring.
func questionPercent(q *Question, ans Answer) (float64, bool) {
	switch q.Type {
	case TypeSingle:
		max := q.MaxChoicePoints()
		if max <= 0 || len(ans.Choices) == 0 {
			return 0, false
		}
		c, _ := q.Choice(ans.Choices[0])
		return clampPct(c.Points / max * 100), true

	case TypeMultiple:
		denom := multipleDenominator(q)
		if denom <= 0 || len(ans.Choices) == 0 {
			return 0, false
		}
		var sum float64
		for _, id := range ans.Choices {
			c, _ := q.Choice(id)
			sum += c.Points
		}
		return clampPct(sum / denom * 100), true

	case TypeScale:
		if ans.Scale == nil {
			return 0, false
		}
		return clampPct(float64(*ans.Scale) / ScaleMax * 100), true
	}
	return 0, false
}

// multipleDenominator is the maximum attainable sum for a multi-select
// question: the sum of the top-N point values, where N is the number of
// intended (is_correct) choices, or every positive-point choice when
// none are marked.
func multipleDenominator(q *Question) float64 {
	points := make([]float64, 0, len(q.Choices))
	intended := 0
	for _, c := range q.Choices {
		if c.Points > 0 {
			points = append(points, c.Points)
		}
		if c.Correct {
			intended++
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(points)))
	if intended == 0 || intended > len(points) {
		intended = len(points)
	}
	var denom float64
	for _, p := range points[:intended] {
		denom += p
	}
	return denom
}

// questionRisks emits a risk entry for every selected choice carrying a
// risk-factor tag. Scale and text answers select no choices and so never
// trigger risks.
func questionRisks(category string, q *Question, ans Answer) []RiskFactor {
	var risks []RiskFactor
	max := q.MaxChoicePoints()
	for _, id := range ans.Choices {
		c, ok := q.Choice(id)
		if !ok || c.RiskFactor == "" {
			continue
		}
		weight := 1.0
		if max > 0 {
			weight = 1.0 - clamp01(c.Points/max)
		}
		risks = append(risks, RiskFactor{
			Category: category,
			Factor:   c.RiskFactor,
			Answer:   c.Text,
			Weight:   weight,
		})
	}
	return risks
}

func clampPct(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
