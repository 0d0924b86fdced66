package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/the5hc/fitscore/internal/ruleset"
)

var (
	rootPath     string
	rulesetPath  string
	bankPath     string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
)

// exitFunc allows tests to intercept process exit.
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "fitscore",
	Short: "Fitness assessment scoring engine",
	Long: `fitscore computes fitness assessment reports: raw physical-test
measurements are mapped through normative threshold tables into category
and overall scores, questionnaire responses are scored per category with
risk-factor extraction, and both domains blend into one comprehensive
0-100 score.

Use "fitscore score" for a single assessment, "fitscore batch" for a
directory of them, and "fitscore bank" to manage the question bank.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Root directory for batch discovery")
	rootCmd.PersistentFlags().StringVar(&rulesetPath, "ruleset", "", "Scoring ruleset YAML file (embedded default if unset)")
	rootCmd.PersistentFlags().StringVar(&bankPath, "bank", "", "Question bank file (.json or .csv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for reports (requires --format)")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("ruleset", rootCmd.PersistentFlags().Lookup("ruleset"))
	viper.BindPFlag("bank", rootCmd.PersistentFlags().Lookup("bank"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	configPaths := []string{".fitscorerc.json", ".fitscorerc.yaml", ".fitscorerc.yml"}
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				os.Exit(1)
			}
			break
		}
	}
}

// loadRuleset resolves the active scoring ruleset: a --ruleset file when
// given, the embedded default otherwise. Ruleset defects are fatal here,
// before any scoring happens.
func loadRuleset(path string) (*ruleset.Ruleset, error) {
	if path == "" {
		return ruleset.Default(), nil
	}
	return ruleset.Load(path)
}
