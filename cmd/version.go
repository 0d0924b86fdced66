package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release version, overridable at build time.
var Version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fitscore version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fitscore %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
