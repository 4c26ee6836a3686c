package stackaudit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackaudit/stackaudit/internal/profiles"
	"github.com/stackaudit/stackaudit/internal/rules"
)

func init() {
	var forProfiles string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List detection rules",
		RunE: func(_ *cobra.Command, _ []string) error {
			reg, err := rules.Default()
			if err != nil {
				return err
			}
			list := reg.All()
			if forProfiles != "" {
				active, unknown := profiles.Parse(forProfiles)
				if len(unknown) > 0 {
					return fmt.Errorf("unknown profile(s): %v", unknown)
				}
				list = reg.RulesFor(active)
			}
			for _, r := range list {
				scope := "generic"
				if len(r.Profiles) > 0 {
					scope = fmt.Sprintf("%v", r.Profiles)
				}
				fmt.Printf("%-28s %-8s %-8s %-10s %s\n", r.ID, r.Severity, r.Category, scope, r.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&forProfiles, "profiles", "", "only show generic rules plus these profiles (comma-separated)")
	rootCmd.AddCommand(cmd)
}
