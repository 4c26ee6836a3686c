package stackaudit

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stackaudit/stackaudit/internal/profiles"
)

func init() {
	var detectPath string
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List supported stack profiles and which ones a path triggers",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(detectPath)
			if err != nil {
				return err
			}
			detected := profiles.Detect(abs)
			for _, p := range profiles.All() {
				mark := " "
				if detected[p.ID] {
					mark = "*"
				}
				fmt.Printf("%s %-10s %s\n", mark, p.ID, p.Label)
			}
			if len(detected) > 0 {
				var ids []string
				for id := range detected {
					ids = append(ids, string(id))
				}
				sort.Strings(ids)
				fmt.Printf("\ndetected in %s: %v\n", abs, ids)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&detectPath, "path", "p", ".", "path to run detection against")
	rootCmd.AddCommand(cmd)
}
