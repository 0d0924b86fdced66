package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/the5hc/fitscore/internal/report"
)

// MarkdownFormatter formats a score report as a markdown document
type MarkdownFormatter struct {
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{outputFile: outputFile}
}

// Format writes the report as markdown to the output file, or stdout
// when no file is configured.
func (f *MarkdownFormatter) Format(r *report.Report) error {
	var b strings.Builder

	b.WriteString("# Fitness Assessment Report\n\n")
	if r.Date != "" {
		fmt.Fprintf(&b, "- Date: %s\n", r.Date)
	}
	if r.ClientID != "" {
		fmt.Fprintf(&b, "- Client: %s\n", r.ClientID)
	}
	if r.TrainerID != "" {
		fmt.Fprintf(&b, "- Trainer: %s\n", r.TrainerID)
	}
	b.WriteString("\n## Tests\n\n")
	b.WriteString("| Test | Score | Max | Source |\n|---|---|---|---|\n")
	for _, t := range r.Tests {
		if t.Score == nil {
			fmt.Fprintf(&b, "| %s | — | %.0f | skipped |\n", t.Test, t.Max)
			continue
		}
		source := "computed"
		if t.Overridden {
			source = "manual"
		}
		fmt.Fprintf(&b, "| %s | %.1f | %.0f | %s |\n", t.Test, *t.Score, t.Max, source)
	}
	if r.PFI != nil {
		fmt.Fprintf(&b, "\nPhysical Fitness Index: %.1f\n", *r.PFI)
	}

	writeCategories(&b, "Physical Categories", r.Physical, true)
	if len(r.MCQ) > 0 {
		writeCategories(&b, "Questionnaire Categories", r.MCQ, false)
	}

	if len(r.Risks) > 0 {
		b.WriteString("\n## Risk Factors\n\n")
		b.WriteString("| Category | Factor | Answer | Severity |\n|---|---|---|---|\n")
		for _, risk := range r.Risks {
			fmt.Fprintf(&b, "| %s | %s | %s | %.2f |\n", risk.Category, risk.Factor, risk.Answer, risk.Weight)
		}
	}
	if len(r.Notes) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, note := range r.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	b.WriteString("\n## Summary\n\n")
	if r.Overall != nil {
		fmt.Fprintf(&b, "- Physical overall: %.1f / 100 (%s)\n", *r.Overall, r.Band)
	}
	if r.Comprehensive != nil {
		fmt.Fprintf(&b, "- Comprehensive: %.1f / 100 (%s)\n", *r.Comprehensive, r.ComprehensiveBand)
	}
	if r.MCQAbsent {
		b.WriteString("- Questionnaire data absent; comprehensive score reflects physical performance only.\n")
	}

	if f.outputFile == "" {
		_, err := os.Stdout.WriteString(b.String())
		return err
	}
	if err := os.WriteFile(f.outputFile, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("error writing report file: %w", err)
	}
	return nil
}

func writeCategories(b *strings.Builder, title string, cats []report.CategoryEntry, points bool) {
	fmt.Fprintf(b, "\n## %s\n\n", title)
	if points {
		b.WriteString("| Category | Points | Percent | Band |\n|---|---|---|---|\n")
	} else {
		b.WriteString("| Category | Percent | Band |\n|---|---|---|\n")
	}
	for _, c := range cats {
		if c.Percent == nil {
			if points {
				fmt.Fprintf(b, "| %s | — | — | no data |\n", c.Name)
			} else {
				fmt.Fprintf(b, "| %s | — | no data |\n", c.Name)
			}
			continue
		}
		if points {
			fmt.Fprintf(b, "| %s | %.1f/%.0f | %.1f%% | %s |\n", c.Name, *c.Points, c.MaxPoints, *c.Percent, c.Band)
		} else {
			fmt.Fprintf(b, "| %s | %.1f%% | %s |\n", c.Name, *c.Percent, c.Band)
		}
	}
}
