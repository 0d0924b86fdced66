package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/the5hc/fitscore/internal/bank"
	"github.com/the5hc/fitscore/internal/mcq"
)

var bankOutPath string

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage the questionnaire question bank",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <bank-file>",
	Short: "Validate a question bank file",
	Long: `Validates a question bank import file (.json or .csv): schema
structure, per-row field constraints, and the category weight invariant.
Exits nonzero on the first defect.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := bank.Load(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
			return
		}
		if !quiet {
			fmt.Printf("✓ %s is a valid question bank\n", args[0])
		}
	},
}

var bankImportCmd = &cobra.Command{
	Use:   "import <bank-file>",
	Short: "Import a question bank and write it in canonical JSON form",
	Long: `Imports a question bank file (.json or .csv), assigns stable
question and choice identifiers, and writes the canonical JSON form. Use
this to convert the flattened CSV variant into the format the scoring
engine and response files reference.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBankImport(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

var bankSummaryCmd = &cobra.Command{
	Use:   "summary <bank-file>",
	Short: "Show categories, weights, and question counts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBankSummary(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	bankImportCmd.Flags().StringVar(&bankOutPath, "out", "", "Output file (default: stdout path <bank>.canonical.json)")
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankImportCmd)
	bankCmd.AddCommand(bankSummaryCmd)
	rootCmd.AddCommand(bankCmd)
}

func runBankImport(path string) error {
	cats, err := bank.Load(path)
	if err != nil {
		return err
	}
	out := bankOutPath
	if out == "" {
		out = path + ".canonical.json"
	}
	if err := bank.WriteJSON(cats, out); err != nil {
		return err
	}
	if !quiet {
		fmt.Printf("✓ imported %d categories to %s\n", len(cats), out)
	}
	return nil
}

func runBankSummary(path string) error {
	cats, err := bank.Load(path)
	if err != nil {
		return err
	}

	var mcqTotal float64
	for _, cat := range cats {
		if cat.Active {
			mcqTotal += cat.Weight
		}
	}

	fmt.Printf("Question bank: %s\n\n", path)
	for _, cat := range cats {
		questions, choices, risks := bankCounts(&cat)
		status := ""
		if !cat.Active {
			status = " (inactive)"
		}
		fmt.Printf("%-12s weight %.2f%s\n", cat.Name, cat.Weight, status)
		fmt.Printf("  %d questions, %d choices, %d risk-tagged\n", questions, choices, risks)
	}
	fmt.Printf("\nMCQ share %.2f, physical share %.2f\n", mcqTotal, 1-mcqTotal)
	return nil
}

func bankCounts(cat *mcq.Category) (questions, choices, risks int) {
	for _, q := range cat.Questions {
		if !q.Active {
			continue
		}
		questions++
		choices += len(q.Choices)
		for _, c := range q.Choices {
			if c.RiskFactor != "" {
				risks++
			}
		}
	}
	return questions, choices, risks
}
