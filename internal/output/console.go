package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/the5hc/fitscore/internal/report"
)

// barWidth is the progress bar width for category percentages.
const barWidth = 25

// ConsoleFormatter formats a score report for console display
type ConsoleFormatter struct {
	quiet    bool
	verbose  bool
	colorize bool
}

// NewConsoleFormatter creates a new ConsoleFormatter
func NewConsoleFormatter(quiet, verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		quiet:    quiet,
		verbose:  verbose,
		colorize: true,
	}
}

// Format renders the score report to stdout
func (f *ConsoleFormatter) Format(r *report.Report) error {
	if f.quiet {
		return nil
	}

	f.printHeader(r)
	f.printTests(r)
	f.printCategories("Physical", r.Physical, true)
	if len(r.MCQ) > 0 {
		f.printCategories("Questionnaire", r.MCQ, false)
	}
	f.printRisks(r)
	f.printConclusion(r)

	return nil
}

func (f *ConsoleFormatter) printHeader(r *report.Report) {
	title := "Fitness Assessment Report"
	if r.Date != "" {
		title += " — " + r.Date
	}
	style := lipgloss.NewStyle()
	if f.colorize {
		style = style.Bold(true)
	}
	fmt.Println(style.Render(title))
	if r.ClientID != "" {
		fmt.Printf("  client  %s\n", r.ClientID)
	}
	if r.TrainerID != "" {
		fmt.Printf("  trainer %s\n", r.TrainerID)
	}
	fmt.Println()
}

func (f *ConsoleFormatter) printTests(r *report.Report) {
	fmt.Println("Tests")
	for _, t := range r.Tests {
		if t.Score == nil {
			if f.verbose {
				fmt.Printf("  %-20s %s\n", t.Test, f.dim("skipped"))
			}
			continue
		}
		marker := ""
		if t.Overridden {
			marker = " (manual)"
		}
		fmt.Printf("  %-20s %.1f / %.0f%s\n", t.Test, *t.Score, t.Max, marker)
	}
	if r.PFI != nil {
		fmt.Printf("  %-20s %.1f\n", "fitness index", *r.PFI)
	}
	fmt.Println()
}

func (f *ConsoleFormatter) printCategories(label string, cats []report.CategoryEntry, points bool) {
	fmt.Println(label)
	for _, c := range cats {
		if c.Percent == nil {
			fmt.Printf("  %-12s %s\n", c.Name, f.dim("no data"))
			continue
		}
		line := fmt.Sprintf("  %-12s %s %5.1f%%", c.Name, f.bar(*c.Percent), *c.Percent)
		if points && c.Points != nil {
			line += fmt.Sprintf("  (%.1f/%.0f)", *c.Points, c.MaxPoints)
		}
		line += "  " + f.bandStyle(c.Band).Render(c.Band)
		fmt.Println(line)
	}
	fmt.Println()
}

func (f *ConsoleFormatter) printRisks(r *report.Report) {
	if len(r.Risks) == 0 && len(r.Notes) == 0 {
		return
	}
	fmt.Println("Flags")
	warn := lipgloss.NewStyle()
	if f.colorize {
		warn = warn.Foreground(lipgloss.Color("3")) // yellow
	}
	for _, risk := range r.Risks {
		fmt.Printf("  %s %s: %q (severity %.2f)\n", warn.Render("⚠"), risk.Factor, risk.Answer, risk.Weight)
	}
	for _, note := range r.Notes {
		fmt.Printf("  %s %s\n", warn.Render("⚠"), note)
	}
	fmt.Println()
}

func (f *ConsoleFormatter) printConclusion(r *report.Report) {
	if r.Comprehensive == nil {
		fmt.Println(f.dim("No scorable data."))
		return
	}
	style := lipgloss.NewStyle()
	if f.colorize {
		style = style.Bold(true)
	}
	fmt.Printf("%s %.1f / 100  %s\n",
		style.Render("Comprehensive score:"),
		*r.Comprehensive,
		f.bandStyle(r.ComprehensiveBand).Render(r.ComprehensiveBand))
	if r.MCQAbsent {
		fmt.Println(f.dim("  (no questionnaire data; physical score only)"))
	}
}

// bar renders a fixed-width progress bar for a 0-100 percentage.
func (f *ConsoleFormatter) bar(pct float64) string {
	filled := int(pct/100*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

func (f *ConsoleFormatter) bandStyle(band string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if !f.colorize {
		return style
	}
	switch band {
	case report.BandExcellent:
		return style.Foreground(lipgloss.Color("10")) // green
	case report.BandGood:
		return style.Foreground(lipgloss.Color("14")) // cyan
	case report.BandAverage:
		return style.Foreground(lipgloss.Color("3")) // yellow
	default:
		return style.Foreground(lipgloss.Color("9")) // red
	}
}

func (f *ConsoleFormatter) dim(s string) string {
	if !f.colorize {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Render(s)
}
