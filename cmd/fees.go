package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/the5hc/fitscore/internal/config"
	"github.com/the5hc/fitscore/internal/fees"
)

var feesCmd = &cobra.Command{
	Use:   "fees <gross-amount>",
	Short: "Back-calculate the fee split of a card-charged amount",
	Long: `Splits a gross card-charged session-package amount (KRW) into net
revenue, VAT, and card fee using the ruleset rates.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFees(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(feesCmd)
}

func runFees(arg string) error {
	gross, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("gross amount must be an integer KRW amount, got %q", arg)
	}

	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	rs, err := loadRuleset(cfg.Ruleset)
	if err != nil {
		return err
	}

	b, err := fees.Calculate(gross, rs.Fees)
	if err != nil {
		return err
	}

	fmt.Printf("gross    %12d\n", b.Gross)
	fmt.Printf("card fee %12d  (%.1f%%)\n", b.CardFee, rs.Fees.CardFeeRate*100)
	fmt.Printf("vat      %12d  (%.1f%%)\n", b.VAT, rs.Fees.VATRate*100)
	fmt.Printf("net      %12d\n", b.Net)
	return nil
}
