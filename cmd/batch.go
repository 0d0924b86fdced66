package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/the5hc/fitscore/internal/config"
	"github.com/the5hc/fitscore/internal/discovery"
	"github.com/the5hc/fitscore/internal/report"
	"github.com/the5hc/fitscore/internal/ruleset"
)

var (
	batchPattern string
	failBelow    float64
)

var batchCmd = &cobra.Command{
	Use:   "batch [root]",
	Short: "Score every assessment file under a directory",
	Long: `Discovers assessment files under the root directory (by glob
pattern), scores each one, and prints an aggregate summary: score
distribution across interpretation bands, mean comprehensive score, and
the lowest-scoring assessments.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := rootPath
		if len(args) > 0 {
			root = args[0]
		}
		if err := runBatch(root); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchPattern, "pattern", "", "Glob pattern for assessment files")
	batchCmd.Flags().Float64Var(&failBelow, "fail-below", 0, "Exit nonzero if any comprehensive score falls below this value")
	viper.BindPFlag("pattern", batchCmd.Flags().Lookup("pattern"))
	viper.BindPFlag("failBelow", batchCmd.Flags().Lookup("fail-below"))
	rootCmd.AddCommand(batchCmd)
}

// scoredFile pairs a discovered file with its report or failure.
type scoredFile struct {
	File   string
	Report *report.Report
	Err    error
}

func runBatch(root string) error {
	cfg, err := config.LoadConfig(root)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	rs, err := loadRuleset(cfg.Ruleset)
	if err != nil {
		return err
	}

	files, err := discovery.NewFileDiscovery(cfg.Root).Discover(cfg.Pattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no assessment files matching %q under %s", cfg.Pattern, cfg.Root)
	}

	results := make([]scoredFile, 0, len(files))
	for _, f := range files {
		rep, err := scoreFile(f.Path, "", "", rs)
		results = append(results, scoredFile{File: f.RelPath, Report: rep, Err: err})
	}

	printBatchSummary(cfg, rs, results)
	return batchExitError(cfg, results)
}

func printBatchSummary(cfg *config.Config, rs *ruleset.Ruleset, results []scoredFile) {
	if cfg.Quiet {
		return
	}

	bands := make(map[string]int)
	var sum float64
	var scored int
	type ranked struct {
		file  string
		score float64
	}
	var ranking []ranked

	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("✗ %s: %v\n", r.File, r.Err)
			continue
		}
		if r.Report.Comprehensive == nil {
			fmt.Printf("- %s: no scorable data\n", r.File)
			continue
		}
		score := *r.Report.Comprehensive
		bands[r.Report.ComprehensiveBand]++
		sum += score
		scored++
		ranking = append(ranking, ranked{r.File, score})
		if cfg.Verbose {
			fmt.Printf("✓ %s: %.1f (%s)\n", r.File, score, r.Report.ComprehensiveBand)
		}
	}

	if scored == 0 {
		fmt.Println("No assessments scored.")
		return
	}

	bold := lipgloss.NewStyle().Bold(true)
	fmt.Println()
	fmt.Println(bold.Render(fmt.Sprintf("Scored %d of %d assessments", scored, len(results))))
	fmt.Printf("  mean comprehensive: %.1f\n", sum/float64(scored))
	for _, band := range []string{report.BandExcellent, report.BandGood, report.BandAverage, report.BandNeedsImprovement} {
		if n := bands[band]; n > 0 {
			fmt.Printf("  %-18s %d\n", band, n)
		}
	}

	sort.Slice(ranking, func(i, j int) bool { return ranking[i].score < ranking[j].score })
	n := len(ranking)
	if n > 5 {
		n = 5
	}
	fmt.Println("  lowest scoring:")
	for _, r := range ranking[:n] {
		fmt.Printf("    %.1f  %s\n", r.score, r.file)
	}
}

func batchExitError(cfg *config.Config, results []scoredFile) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("%d of %d assessments failed to score", countErrs(results), len(results))
		}
	}
	if cfg.FailBelow <= 0 {
		return nil
	}
	for _, r := range results {
		if r.Report.Comprehensive != nil && *r.Report.Comprehensive < cfg.FailBelow {
			return fmt.Errorf("%s scored %.1f, below the %.1f threshold", r.File, *r.Report.Comprehensive, cfg.FailBelow)
		}
	}
	return nil
}

func countErrs(results []scoredFile) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
