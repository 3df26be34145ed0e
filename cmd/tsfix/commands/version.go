package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/tsfix/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of tsfix.`,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("tsfix version %s\n", cmd.Version)
		fmt.Printf("  commit: %s\n", cmd.Commit)
		fmt.Printf("  built:  %s\n", cmd.Date)
	},
}
