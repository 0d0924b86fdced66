package outputters

import (
	"fmt"

	"github.com/the5hc/fitscore/internal/config"
	"github.com/the5hc/fitscore/internal/output"
	"github.com/the5hc/fitscore/internal/report"
)

// Outputter handles output formatting
type Outputter struct {
	config *config.Config
}

// NewOutputter creates a new Outputter
func NewOutputter(config *config.Config) *Outputter {
	return &Outputter{
		config: config,
	}
}

// Format renders the score report using the configured format
func (o *Outputter) Format(r *report.Report, format string) error {
	switch format {
	case "console":
		formatter := output.NewConsoleFormatter(o.config.Quiet, o.config.Verbose)
		return formatter.Format(r)
	case "json":
		formatter := output.NewJSONFormatter(true, o.config.Output)
		return formatter.Format(r)
	case "markdown":
		formatter := output.NewMarkdownFormatter(o.config.Output)
		return formatter.Format(r)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
