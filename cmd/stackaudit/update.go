package stackaudit

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackaudit/stackaudit/internal/update"
)

func init() {
	var checkOnly bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update stackaudit to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			latest, newer, err := update.Check(version, false)
			if err != nil {
				return err
			}
			if !newer {
				fmt.Println("stackaudit is up to date.")
				return nil
			}
			if checkOnly {
				fmt.Printf("new version available: v%s (current v%s)\n", latest, version)
				return nil
			}
			fmt.Fprintf(os.Stderr, "updating to v%s...\n", latest)
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("self-update: %w", err)
			}
			fmt.Println("updated; re-run your command")
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only check for a new version, do not install")
	rootCmd.AddCommand(cmd)
}
