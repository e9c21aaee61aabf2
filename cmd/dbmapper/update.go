package dbmapper

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbmapper/dbmapper/internal/update"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update dbmapper to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			installed, err := update.Apply(version)
			if err != nil {
				return fmt.Errorf("self-update failed: %w", err)
			}
			if !update.Newer(installed, version) {
				fmt.Printf("dbmapper %s is already the latest version\n", version)
				return nil
			}
			fmt.Printf("updated to v%s\n", installed)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
