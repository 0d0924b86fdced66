package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/the5hc/fitscore/internal/assessment"
	"github.com/the5hc/fitscore/internal/bank"
	"github.com/the5hc/fitscore/internal/config"
	"github.com/the5hc/fitscore/internal/mcq"
	"github.com/the5hc/fitscore/internal/outputters"
	"github.com/the5hc/fitscore/internal/report"
	"github.com/the5hc/fitscore/internal/ruleset"
	"github.com/the5hc/fitscore/internal/scoring"
)

var responsesPath string

var scoreCmd = &cobra.Command{
	Use:   "score <assessment-file>",
	Short: "Score one assessment record",
	Long: `Scores a single assessment JSON file: per-test scores, the four
physical category scores, and the overall score. When a question bank and
a response file are supplied, questionnaire categories and risk factors
are scored too and blended into the comprehensive score.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScore(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	scoreCmd.Flags().StringVar(&responsesPath, "responses", "", "Questionnaire responses JSON file")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(path string) error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	rs, err := loadRuleset(cfg.Ruleset)
	if err != nil {
		return err
	}

	rep, err := scoreFile(path, responsesPath, cfg.Bank, rs)
	if err != nil {
		return err
	}

	return outputters.NewOutputter(cfg).Format(rep, cfg.Format)
}

// scoreFile runs the full pipeline for one assessment file: validate,
// score physical tests, optionally score questionnaire responses, and
// assemble the report.
func scoreFile(assessmentPath, responsesPath, bankPath string, rs *ruleset.Ruleset) (*report.Report, error) {
	a, err := assessment.LoadFile(assessmentPath)
	if err != nil {
		return nil, err
	}

	phys, err := scoring.Score(a, rs)
	if err != nil {
		return nil, err
	}

	var mcqResult *mcq.Result
	if responsesPath != "" {
		if bankPath == "" {
			return nil, fmt.Errorf("--responses requires a question bank (--bank)")
		}
		cats, err := bank.Load(bankPath)
		if err != nil {
			return nil, err
		}
		responses, err := mcq.LoadResponses(responsesPath)
		if err != nil {
			return nil, err
		}
		mcqResult, err = mcq.Score(cats, responses)
		if err != nil {
			return nil, err
		}
	}

	return report.Build(a, phys, mcqResult, rs), nil
}
