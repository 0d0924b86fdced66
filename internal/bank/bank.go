// Package bank imports and exports the question bank consumed by the
// MCQ scoring engine. The JSON form is the canonical admin format; a CSV
// variant flattens up to five choices per row. Imported banks are the
// engine's source of category weights and per-choice point and risk
// values, so imports are validated twice: structurally against a CUE
// schema and field-by-field with Go validation.
package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/the5hc/fitscore/internal/mcq"
)

// ChoiceRow is one choice in the import format.
type ChoiceRow struct {
	ID         string  `json:"id,omitempty"`
	ChoiceText string  `json:"choice_text" validate:"required"`
	Points     float64 `json:"points" validate:"min=0"`
	RiskFactor string  `json:"risk_factor,omitempty"`
	Order      int     `json:"order" validate:"min=0"`
	IsCorrect  bool    `json:"is_correct,omitempty"`
}

// CategoryRef is the embedded category descriptor repeated on each row.
type CategoryRef struct {
	Name        string  `json:"name" validate:"required"`
	NameKo      string  `json:"name_ko,omitempty"`
	Weight      float64 `json:"weight" validate:"gt=0,lt=1"`
	Order       int     `json:"order" validate:"min=0"`
	Description string  `json:"description,omitempty"`
}

// QuestionRow is one question in the import format.
type QuestionRow struct {
	ID             string      `json:"id,omitempty"`
	Category       CategoryRef `json:"category" validate:"required"`
	QuestionText   string      `json:"question_text" validate:"required"`
	QuestionTextKo string      `json:"question_text_ko,omitempty"`
	QuestionType   string      `json:"question_type" validate:"oneof=single multiple scale text"`
	IsRequired     bool        `json:"is_required"`
	Points         float64     `json:"points" validate:"min=0"`
	HelpText       string      `json:"help_text,omitempty"`
	Order          int         `json:"order" validate:"min=0"`
	IsActive       bool        `json:"is_active"`
	Choices        []ChoiceRow `json:"choices,omitempty" validate:"dive"`
}

// ImportError reports one defective row in an import file.
type ImportError struct {
	Row     int    // zero-based row index, -1 for file-level problems
	Field   string
	Message string
}

func (e *ImportError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("question bank: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("question bank row %d: %s: %s", e.Row, e.Field, e.Message)
}

var rowValidate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a question bank file, dispatching on extension (.json or
// .csv), and builds the category value objects the scoring engine
// consumes.
func Load(path string) ([]mcq.Category, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		rows, err := LoadJSON(path)
		if err != nil {
			return nil, err
		}
		return Build(rows)
	case ".csv":
		rows, err := LoadCSV(path)
		if err != nil {
			return nil, err
		}
		return Build(rows)
	default:
		return nil, fmt.Errorf("question bank %s: unsupported format (want .json or .csv)", path)
	}
}

// LoadJSON reads the canonical JSON import format. The raw bytes are
// validated against the embedded CUE schema before decoding.
func LoadJSON(path string) ([]QuestionRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading question bank: %w", err)
	}
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}
	var rows []QuestionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing question bank: %w", err)
	}
	return rows, nil
}

// Build validates rows and assembles them into ordered category value
// objects. Questions group under the category named on their row. Rows
// repeating a category must agree on its weight and order; the Korean
// name and description come from the first row naming it, and later
// values are ignored. Missing question and choice IDs get stable
// derived ones.
func Build(rows []QuestionRow) ([]mcq.Category, error) {
	byName := make(map[string]*mcq.Category)
	var order []string

	for i := range rows {
		row := &rows[i]
		if err := validateRow(i, row); err != nil {
			return nil, err
		}

		cat, ok := byName[row.Category.Name]
		if !ok {
			cat = &mcq.Category{
				Name:        row.Category.Name,
				NameKo:      row.Category.NameKo,
				Weight:      row.Category.Weight,
				Order:       row.Category.Order,
				Description: row.Category.Description,
				Active:      true,
			}
			byName[row.Category.Name] = cat
			order = append(order, row.Category.Name)
		} else if cat.Weight != row.Category.Weight {
			return nil, &ImportError{i, "category.weight",
				fmt.Sprintf("category %q declared with conflicting weights %g and %g", cat.Name, cat.Weight, row.Category.Weight)}
		} else if cat.Order != row.Category.Order {
			return nil, &ImportError{i, "category.order",
				fmt.Sprintf("category %q declared with conflicting orders %d and %d", cat.Name, cat.Order, row.Category.Order)}
		}

		q := mcq.Question{
			ID:       row.ID,
			Text:     row.QuestionText,
			TextKo:   row.QuestionTextKo,
			Type:     mcq.QuestionType(row.QuestionType),
			Required: row.IsRequired,
			Points:   row.Points,
			HelpText: row.HelpText,
			Order:    row.Order,
			Active:   row.IsActive,
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("%s-q%d", slug(cat.Name), row.Order)
		}
		for _, cr := range row.Choices {
			c := mcq.Choice{
				ID:         cr.ID,
				Text:       cr.ChoiceText,
				Points:     cr.Points,
				RiskFactor: cr.RiskFactor,
				Order:      cr.Order,
				Correct:    cr.IsCorrect,
			}
			if c.ID == "" {
				c.ID = fmt.Sprintf("%s-c%d", q.ID, cr.Order)
			}
			q.Choices = append(q.Choices, c)
		}
		cat.Questions = append(cat.Questions, q)
	}

	cats := make([]mcq.Category, 0, len(order))
	for _, name := range order {
		cat := byName[name]
		sort.SliceStable(cat.Questions, func(a, b int) bool {
			return cat.Questions[a].Order < cat.Questions[b].Order
		})
		for i := range cat.Questions {
			q := &cat.Questions[i]
			sort.SliceStable(q.Choices, func(a, b int) bool {
				return q.Choices[a].Order < q.Choices[b].Order
			})
		}
		cats = append(cats, *cat)
	}
	sort.SliceStable(cats, func(a, b int) bool { return cats[a].Order < cats[b].Order })

	if err := validateWeights(cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func validateRow(i int, row *QuestionRow) error {
	if err := rowValidate.Struct(row); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("validating question bank row %d: %w", i, err)
		}
		fe := verrs[0]
		return &ImportError{i, fe.Namespace(), fmt.Sprintf("failed %q constraint (value %v)", fe.Tag(), fe.Value())}
	}

	switch mcq.QuestionType(row.QuestionType) {
	case mcq.TypeSingle, mcq.TypeMultiple:
		if len(row.Choices) < 2 {
			return &ImportError{i, "choices", "choice questions need at least two choices"}
		}
	case mcq.TypeScale, mcq.TypeText:
		if len(row.Choices) > 0 {
			return &ImportError{i, "choices", fmt.Sprintf("%s questions must not carry choices", row.QuestionType)}
		}
	}
	return nil
}

// validateWeights enforces the comprehensive-score weight invariant:
// active category weights sum below 0.5 so the physical domain always
// holds the majority share.
func validateWeights(cats []mcq.Category) error {
	var total float64
	for _, c := range cats {
		if !c.Active {
			continue
		}
		total += c.Weight
	}
	if total >= 0.5 {
		return &ImportError{-1, "category weights",
			fmt.Sprintf("active category weights sum to %.3f; must stay below the physical share (0.5)", total)}
	}
	return nil
}

// WriteJSON exports a bank back to the canonical import format so admin
// tooling can round-trip edits.
func WriteJSON(cats []mcq.Category, path string) error {
	var rows []QuestionRow
	for _, cat := range cats {
		ref := CategoryRef{
			Name:        cat.Name,
			NameKo:      cat.NameKo,
			Weight:      cat.Weight,
			Order:       cat.Order,
			Description: cat.Description,
		}
		for _, q := range cat.Questions {
			row := QuestionRow{
				ID:             q.ID,
				Category:       ref,
				QuestionText:   q.Text,
				QuestionTextKo: q.TextKo,
				QuestionType:   string(q.Type),
				IsRequired:     q.Required,
				Points:         q.Points,
				HelpText:       q.HelpText,
				Order:          q.Order,
				IsActive:       q.Active,
			}
			for _, c := range q.Choices {
				row.Choices = append(row.Choices, ChoiceRow{
					ID:         c.ID,
					ChoiceText: c.Text,
					Points:     c.Points,
					RiskFactor: c.RiskFactor,
					Order:      c.Order,
					IsCorrect:  c.Correct,
				})
			}
			rows = append(rows, row)
		}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding question bank: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing question bank: %w", err)
	}
	return nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, s)
}
