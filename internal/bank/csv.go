package bank

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// maxCSVChoices is how many numbered choice column groups the flattened
// CSV variant carries per row.
const maxCSVChoices = 5

var csvHeader = buildCSVHeader()

func buildCSVHeader() []string {
	h := []string{
		"category_name", "category_name_ko", "category_weight", "category_order", "category_description",
		"question_text", "question_text_ko", "question_type", "is_required", "points",
		"help_text", "order", "is_active",
	}
	for i := 1; i <= maxCSVChoices; i++ {
		h = append(h,
			fmt.Sprintf("choice_%d_text", i),
			fmt.Sprintf("choice_%d_points", i),
			fmt.Sprintf("choice_%d_risk", i),
			fmt.Sprintf("choice_%d_correct", i),
		)
	}
	return h
}

// LoadCSV reads the flattened CSV import variant: one question per row,
// with up to five choices spread across numbered column groups. Empty
// choice text columns end the row's choice list.
func LoadCSV(path string) ([]QuestionRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading question bank: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing question bank CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, &ImportError{-1, "csv", "file is empty"}
	}
	if err := checkCSVHeader(records[0]); err != nil {
		return nil, err
	}

	rows := make([]QuestionRow, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseCSVRow(i, record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func checkCSVHeader(got []string) error {
	for i, want := range csvHeader {
		if i >= len(got) || !strings.EqualFold(strings.TrimSpace(got[i]), want) {
			return &ImportError{-1, "csv header", fmt.Sprintf("column %d: want %q", i, want)}
		}
	}
	return nil
}

func parseCSVRow(i int, record []string) (QuestionRow, error) {
	field := func(col int) string { return strings.TrimSpace(record[col]) }

	weight, err := strconv.ParseFloat(field(2), 64)
	if err != nil {
		return QuestionRow{}, &ImportError{i, "category_weight", "not a number"}
	}
	catOrder, err := parseCSVInt(field(3))
	if err != nil {
		return QuestionRow{}, &ImportError{i, "category_order", "not an integer"}
	}
	points, err := strconv.ParseFloat(field(9), 64)
	if err != nil {
		return QuestionRow{}, &ImportError{i, "points", "not a number"}
	}
	order, err := parseCSVInt(field(11))
	if err != nil {
		return QuestionRow{}, &ImportError{i, "order", "not an integer"}
	}

	row := QuestionRow{
		Category: CategoryRef{
			Name:        field(0),
			NameKo:      field(1),
			Weight:      weight,
			Order:       catOrder,
			Description: field(4),
		},
		QuestionText:   field(5),
		QuestionTextKo: field(6),
		QuestionType:   field(7),
		IsRequired:     parseCSVBool(field(8)),
		Points:         points,
		HelpText:       field(10),
		Order:          order,
		IsActive:       parseCSVBool(field(12)),
	}

	base := 13
	for c := 0; c < maxCSVChoices; c++ {
		col := base + c*4
		text := field(col)
		if text == "" {
			break
		}
		cpoints, err := strconv.ParseFloat(field(col+1), 64)
		if err != nil {
			return QuestionRow{}, &ImportError{i, fmt.Sprintf("choice_%d_points", c+1), "not a number"}
		}
		row.Choices = append(row.Choices, ChoiceRow{
			ChoiceText: text,
			Points:     cpoints,
			RiskFactor: field(col + 2),
			Order:      c + 1,
			IsCorrect:  parseCSVBool(field(col + 3)),
		})
	}
	return row, nil
}

func parseCSVInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseCSVBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
