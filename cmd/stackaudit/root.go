package stackaudit

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagNoColor       bool
	flagNoCache       bool
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the stackaudit CLI.
var rootCmd = &cobra.Command{
	Use:           "stackaudit",
	Short:         "Find secrets and misconfigurations in your repo",
	Long:          "stackaudit detects the technology stacks in a project tree and scans it for leaked secrets and insecure configuration, with stack-specific rules.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the stackaudit CLI. It should be called by the main package.
// Scan findings exit 1 from the scan command itself; errors exit 2 here.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the stackaudit version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version)
		},
	})
}
